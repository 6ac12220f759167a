// Package mongo implements the post repository on a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkwell/internal/domain/entity"
	"inkwell/internal/repository"
)

// CollectionName is the collection holding one document per post.
const CollectionName = "posts"

type document struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Excerpt    string    `bson:"excerpt"`
	Content    string    `bson:"content"`
	CoverImage string    `bson:"coverImage"`
	Category   string    `bson:"category"`
	Author     string    `bson:"author"`
	Published  bool      `bson:"published"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func (d document) toEntity() *entity.Post {
	return &entity.Post{
		ID: d.ID, Title: d.Title, Excerpt: d.Excerpt, Content: d.Content,
		CoverImage: d.CoverImage, Category: d.Category, Author: d.Author,
		Published: d.Published,
		CreatedAt: entity.Timestamp(d.CreatedAt), UpdatedAt: entity.Timestamp(d.UpdatedAt),
	}
}

type PostRepo struct {
	coll     *mongo.Collection
	settings repository.Settings
}

// NewPostRepo binds to the posts collection of database. The client behind it
// stays owned by the caller.
func NewPostRepo(database *mongo.Database, opts ...repository.Option) *PostRepo {
	return &PostRepo{coll: database.Collection(CollectionName), settings: repository.NewSettings(opts...)}
}

// EnsureIndexes creates the index backing the newest-first listing.
func (repo *PostRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("idx_posts_created_at"),
	})
	if err != nil {
		return repository.StorageError("EnsureIndexes", err)
	}
	return nil
}

func (repo *PostRepo) List(ctx context.Context) ([]*entity.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := repo.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, repository.StorageError("List", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	posts := make([]*entity.Post, 0, 32)
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, repository.StorageError("List: Decode", err)
		}
		posts = append(posts, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, repository.StorageError("List", err)
	}
	return posts, nil
}

func (repo *PostRepo) Get(ctx context.Context, id string) (*entity.Post, error) {
	var doc document
	err := repo.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.StorageError("Get", err)
	}
	return doc.toEntity(), nil
}

func (repo *PostRepo) Insert(ctx context.Context, fields repository.PostFields) (*entity.Post, error) {
	now := entity.Timestamp(repo.settings.Now())
	doc := document{
		ID:         repo.settings.NewID(),
		Title:      fields.Title,
		Excerpt:    fields.Excerpt,
		Content:    fields.Content,
		CoverImage: fields.CoverImage,
		Category:   fields.Category,
		Author:     fields.Author,
		Published:  fields.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return nil, repository.StorageError("Insert", err)
	}
	return doc.toEntity(), nil
}

// Update runs a single pipeline update. Patch values are wrapped in $literal
// so user text starting with '$' is never read as a field path.
func (repo *PostRepo) Update(ctx context.Context, id string, patch repository.PostPatch) (*entity.Post, error) {
	set := bson.D{}
	literal := func(field string, v any) {
		set = append(set, bson.E{Key: field, Value: bson.D{{Key: "$literal", Value: v}}})
	}
	if patch.Title != nil {
		literal("title", *patch.Title)
	}
	if patch.Excerpt != nil {
		literal("excerpt", *patch.Excerpt)
	}
	if patch.Content != nil {
		literal("content", *patch.Content)
	}
	if patch.CoverImage != nil {
		literal("coverImage", *patch.CoverImage)
	}
	if patch.Category != nil {
		literal("category", *patch.Category)
	}
	if patch.Author != nil {
		literal("author", *patch.Author)
	}
	if patch.Published != nil {
		literal("published", *patch.Published)
	}
	now := entity.Timestamp(repo.settings.Now())
	set = append(set, bson.E{Key: "updatedAt", Value: bson.D{{Key: "$max", Value: bson.A{
		now,
		bson.D{{Key: "$add", Value: bson.A{"$updatedAt", int64(entity.TimestampPrecision / time.Millisecond)}}},
	}}}})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc document
	err := repo.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		mongo.Pipeline{{{Key: "$set", Value: set}}},
		opts,
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.StorageError("Update", err)
	}
	return doc.toEntity(), nil
}

func (repo *PostRepo) Remove(ctx context.Context, id string) (bool, error) {
	res, err := repo.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, repository.StorageError("Remove", err)
	}
	return res.DeletedCount > 0, nil
}

func (repo *PostRepo) Ping(ctx context.Context) error {
	if err := repo.coll.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return repository.StorageError("Ping", err)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepo)(nil)
