package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/ports"
)

// recordDocument is the stored shape: one document per article, keyed by its id.
type recordDocument struct {
	ID        string                 `bson:"_id"`
	NewsData  domain.ArticleMetadata `bson:"news_data"`
	Comments  []domain.Comment       `bson:"comments"`
	CreatedAt time.Time              `bson:"created_at"`
}

// MongoRepository persists news records into a MongoDB collection.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ ports.RecordRepository = (*MongoRepository)(nil)

// OpenMongo connects and pings the server.
func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoRepository, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return NewMongoRepository(client, client.Database(database).Collection(collection)), nil
}

// NewMongoRepository wires an existing client and collection.
func NewMongoRepository(client *mongo.Client, collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{client: client, collection: collection}
}

// Insert upserts the whole document so a resubmitted id replaces the old record.
func (r *MongoRepository) Insert(ctx context.Context, rec domain.NewsRecord) error {
	comments := rec.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}

	doc := recordDocument{
		ID:        rec.Article.ID,
		NewsData:  rec.Article,
		Comments:  comments,
		CreatedAt: rec.CreatedAt.UTC(),
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// FindByID loads a record by article id.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (domain.NewsRecord, error) {
	var doc recordDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.NewsRecord{}, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return domain.NewsRecord{}, fmt.Errorf("find record: %w", err)
	}

	if doc.Comments == nil {
		doc.Comments = []domain.Comment{}
	}
	return domain.NewsRecord{
		Article:   doc.NewsData,
		Comments:  doc.Comments,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// DeleteByID removes the document.
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if res.DeletedCount == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// Close disconnects the client.
func (r *MongoRepository) Close() error {
	if r.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
