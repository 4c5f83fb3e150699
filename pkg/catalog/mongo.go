package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDoc mirrors one document in the products collection.
type productDoc struct {
	Brand         string  `bson:"brand"`
	Model         string  `bson:"model"`
	Name          string  `bson:"name,omitempty"`
	PartNumber    string  `bson:"part_number,omitempty"`
	Units         float64 `bson:"rack_units"`
	Weight        float64 `bson:"weight,omitempty"`
	BTU           float64 `bson:"btu,omitempty"`
	Watts         float64 `bson:"watts,omitempty"`
	Subsystem     string  `bson:"subsystem,omitempty"`
	RackMountable bool    `bson:"is_rack_mountable"`
	Category      string  `bson:"category,omitempty"`
	Connections   string  `bson:"connections,omitempty"`
	Notes         string  `bson:"notes,omitempty"`
}

// MongoOptions configure a MongoSource.
type MongoOptions struct {
	URI        string // required, e.g. mongodb://localhost:27017
	Database   string // defaults to "rackplan"
	Collection string // defaults to "products"
}

// MongoSource resolves specs from a MongoDB product catalog. On the
// first lookup every rack-mountable document is pulled into an
// in-memory index; later lookups are served from the index, including
// fuzzy model-number matches.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection

	loadOnce sync.Once
	loadErr  error
	ix       *specIndex
}

// NewMongoSource connects to MongoDB and returns a source backed by the
// configured collection. The catalog itself is not read until the first
// lookup.
func NewMongoSource(ctx context.Context, opts MongoOptions) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	db := opts.Database
	if db == "" {
		db = "rackplan"
	}
	coll := opts.Collection
	if coll == "" {
		coll = "products"
	}
	return &MongoSource{
		client: client,
		coll:   client.Database(db).Collection(coll),
	}, nil
}

// Name identifies the source as "mongo".
func (s *MongoSource) Name() string { return "mongo" }

// Close disconnects from MongoDB.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Lookup resolves q against the in-memory index, loading the catalog on
// first use.
func (s *MongoSource) Lookup(ctx context.Context, q Query) (*Spec, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	spec := s.ix.lookup(q.ModelNumber())
	if spec == nil || spec.Units <= 0 {
		return nil, ErrNotFound
	}
	cp := *spec
	return &cp, nil
}

// Import upserts entries into the catalog collection, keyed by brand
// and model.
func (s *MongoSource) Import(ctx context.Context, entries []Entry) (int, error) {
	upsert := options.Update().SetUpsert(true)
	written := 0
	for _, e := range entries {
		if e.Model == "" {
			continue
		}
		doc := productDoc{
			Brand:         e.Brand,
			Model:         e.Model,
			Name:          e.Name,
			PartNumber:    e.PartNumber,
			Units:         e.Spec.Units,
			Weight:        e.Spec.Weight,
			BTU:           e.Spec.BTU,
			Watts:         e.Spec.Watts,
			Subsystem:     e.Spec.Subsystem,
			RackMountable: e.Spec.RackMountable,
			Category:      e.Category,
			Connections:   e.Spec.Connections,
			Notes:         e.Notes,
		}
		filter := bson.M{"brand": e.Brand, "model": e.Model}
		if _, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": doc}, upsert); err != nil {
			return written, fmt.Errorf("import %s %s: %w", e.Brand, e.Model, err)
		}
		written++
	}
	return written, nil
}

// load pulls every rack-mountable product into the in-memory index.
// The collection is read once per source.
func (s *MongoSource) load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		ix := newSpecIndex()
		cur, err := s.coll.Find(ctx, bson.M{"is_rack_mountable": true})
		if err != nil {
			s.loadErr = fmt.Errorf("load product catalog: %w", err)
			return
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var doc productDoc
			if err := cur.Decode(&doc); err != nil {
				s.loadErr = fmt.Errorf("decode product: %w", err)
				return
			}
			ix.add(doc.Brand, doc.Model, doc.PartNumber, specFromDoc(doc))
		}
		if err := cur.Err(); err != nil {
			s.loadErr = fmt.Errorf("load product catalog: %w", err)
			return
		}
		s.ix = ix
	})
	return s.loadErr
}

func specFromDoc(doc productDoc) *Spec {
	units := doc.Units
	if units <= 0 {
		units = 1
	}
	subsystem := doc.Subsystem
	if subsystem == "" {
		subsystem = "AV"
	}
	return &Spec{
		Units:         units,
		Weight:        doc.Weight,
		BTU:           doc.BTU,
		Watts:         doc.Watts,
		Subsystem:     subsystem,
		RackMountable: true,
		Connections:   doc.Connections,
		Source:        "mongo",
	}
}

var (
	_ Source   = (*MongoSource)(nil)
	_ Importer = (*MongoSource)(nil)
)
