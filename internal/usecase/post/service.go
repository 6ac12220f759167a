package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inkwell/internal/domain/entity"
	"inkwell/internal/observability/logging"
	"inkwell/internal/observability/metrics"
	"inkwell/internal/observability/tracing"
	"inkwell/internal/repository"
)

// Stats are the dashboard counters.
type Stats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

// Service provides post management use cases.
// It composes the repository with the visibility policy; it keeps no state of its own.
type Service struct {
	Repo   repository.PostRepository
	Policy Policy
}

// NewService creates a post service over repo.
func NewService(repo repository.PostRepository, policy Policy) *Service {
	if policy.DraftLookup == "" {
		policy.DraftLookup = DraftLookupOpen
	}
	return &Service{Repo: repo, Policy: policy}
}

// ListVisible returns the posts the caller may see, newest first.
// A storage failure is logged and answered with an empty list.
func (s *Service) ListVisible(ctx context.Context, isAdmin bool) ([]*entity.Post, error) {
	ctx, span := startSpan(ctx, "post.ListVisible", isAdmin)
	defer span.End()

	posts, err := s.list(ctx)
	if err != nil {
		if degrade(ctx, span, "list", err) {
			return []*entity.Post{}, nil
		}
		return nil, fmt.Errorf("list posts: %w", err)
	}
	visible := s.Policy.FilterForCaller(posts, isAdmin)
	span.SetAttributes(attribute.Int("post.count", len(visible)))
	return visible, nil
}

// GetByID returns a single post subject to the draft lookup mode.
// Missing posts, hidden drafts and storage failures all yield ErrPostNotFound.
func (s *Service) GetByID(ctx context.Context, id string, isAdmin bool) (*entity.Post, error) {
	ctx, span := startSpan(ctx, "post.GetByID", isAdmin)
	defer span.End()
	span.SetAttributes(attribute.String("post.id", id))

	start := time.Now()
	post, err := s.Repo.Get(ctx, id)
	metrics.RecordDBQuery("get", time.Since(start))
	if err != nil {
		if degrade(ctx, span, "get", err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if !s.Policy.CanReadByID(post, isAdmin) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create validates and stores a new post. Anonymous submissions always land as drafts.
func (s *Service) Create(ctx context.Context, in Input, isAdmin bool) (post *entity.Post, err error) {
	ctx, span := startSpan(ctx, "post.Create", isAdmin)
	defer func() { finish(span, "create", isAdmin, err) }()

	if err := entity.ValidateRequired("title", deref(in.Title)); err != nil {
		return nil, err
	}
	if err := entity.ValidateRequired("content", deref(in.Content)); err != nil {
		return nil, err
	}
	if err := entity.ValidateCoverImage(deref(in.CoverImage)); err != nil {
		return nil, err
	}

	fields := s.Policy.CreateFields(in, isAdmin)

	start := time.Now()
	post, err = s.Repo.Insert(ctx, fields)
	metrics.RecordDBQuery("insert", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	span.SetAttributes(attribute.String("post.id", post.ID), attribute.Bool("post.published", post.Published))
	logging.FromContext(ctx).Info("post created",
		"post_id", post.ID,
		"published", post.Published,
		"caller", metrics.CallerLabel(isAdmin))
	return post, nil
}

// Update merges the supplied fields into an existing post. Admin only.
// Authorization is checked before validation and before the post is looked up.
func (s *Service) Update(ctx context.Context, id string, in Input, isAdmin bool) (post *entity.Post, err error) {
	ctx, span := startSpan(ctx, "post.Update", isAdmin)
	defer func() { finish(span, "update", isAdmin, err) }()
	span.SetAttributes(attribute.String("post.id", id))

	if err := s.Policy.AuthorizeMutation(isAdmin); err != nil {
		return nil, err
	}
	if in.Title != nil {
		if err := entity.ValidateRequired("title", *in.Title); err != nil {
			return nil, err
		}
	}
	if in.Content != nil {
		if err := entity.ValidateRequired("content", *in.Content); err != nil {
			return nil, err
		}
	}
	if in.CoverImage != nil {
		if err := entity.ValidateCoverImage(*in.CoverImage); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	post, err = s.Repo.Update(ctx, id, patchFrom(s.Policy.SanitizeWrite(in, isAdmin)))
	metrics.RecordDBQuery("update", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Delete hard-deletes a post. Admin only. It reports false when no post had the id.
func (s *Service) Delete(ctx context.Context, id string, isAdmin bool) (removed bool, err error) {
	ctx, span := startSpan(ctx, "post.Delete", isAdmin)
	defer func() {
		if err == nil && !removed {
			finish(span, "delete", isAdmin, ErrPostNotFound)
			return
		}
		finish(span, "delete", isAdmin, err)
	}()
	span.SetAttributes(attribute.String("post.id", id))

	if err := s.Policy.AuthorizeMutation(isAdmin); err != nil {
		return false, err
	}

	start := time.Now()
	removed, err = s.Repo.Remove(ctx, id)
	metrics.RecordDBQuery("remove", time.Since(start))
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	if removed {
		logging.FromContext(ctx).Info("post deleted", "post_id", id)
	}
	return removed, nil
}

// TogglePublish flips the published flag of a post. Admin only.
func (s *Service) TogglePublish(ctx context.Context, id string, isAdmin bool) (post *entity.Post, err error) {
	ctx, span := startSpan(ctx, "post.TogglePublish", isAdmin)
	defer func() { finish(span, "toggle", isAdmin, err) }()
	span.SetAttributes(attribute.String("post.id", id))

	if err := s.Policy.AuthorizeMutation(isAdmin); err != nil {
		return nil, err
	}

	current, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle post: %w", err)
	}
	if current == nil {
		return nil, ErrPostNotFound
	}

	next := !current.Published
	start := time.Now()
	post, err = s.Repo.Update(ctx, id, repository.PostPatch{Published: &next})
	metrics.RecordDBQuery("update", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("toggle post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	logging.FromContext(ctx).Info("post publish state changed", "post_id", id, "published", post.Published)
	return post, nil
}

// Stats counts stored posts by state. Admin only.
// A storage failure is logged and answered with zero counts.
func (s *Service) Stats(ctx context.Context, isAdmin bool) (Stats, error) {
	ctx, span := startSpan(ctx, "post.Stats", isAdmin)
	defer span.End()

	if err := s.Policy.AuthorizeMutation(isAdmin); err != nil {
		return Stats{}, err
	}

	posts, err := s.list(ctx)
	if err != nil {
		if degrade(ctx, span, "stats", err) {
			return Stats{}, nil
		}
		return Stats{}, fmt.Errorf("post stats: %w", err)
	}
	stats := Count(posts)
	metrics.UpdatePostsTotal(stats.Published, stats.Drafts)
	return stats, nil
}

// Count tallies posts by publication state.
func Count(posts []*entity.Post) Stats {
	st := Stats{Total: len(posts)}
	for _, p := range posts {
		if p.Published {
			st.Published++
		}
	}
	st.Drafts = st.Total - st.Published
	return st
}

// RefreshGauges recomputes the post gauges from storage. It is meant to run
// on a schedule; on failure the gauges keep their previous values.
func (s *Service) RefreshGauges(ctx context.Context) error {
	posts, err := s.list(ctx)
	if err != nil {
		return fmt.Errorf("refresh post gauges: %w", err)
	}
	st := Count(posts)
	metrics.UpdatePostsTotal(st.Published, st.Drafts)
	return nil
}

func (s *Service) list(ctx context.Context) ([]*entity.Post, error) {
	start := time.Now()
	posts, err := s.Repo.List(ctx)
	metrics.RecordDBQuery("list", time.Since(start))
	return posts, err
}

func startSpan(ctx context.Context, name string, isAdmin bool) (context.Context, trace.Span) {
	ctx, span := tracing.GetTracer().Start(ctx, name)
	span.SetAttributes(attribute.String("caller", metrics.CallerLabel(isAdmin)))
	return ctx, span
}

// degrade reports whether a read failure should be swallowed. Only storage
// failures are; the cause is logged and counted.
func degrade(ctx context.Context, span trace.Span, op string, err error) bool {
	if !errors.Is(err, repository.ErrStorage) {
		return false
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "storage unavailable")
	metrics.RecordDegradedRead(op)
	logging.FromContext(ctx).Error("post read degraded", "operation", op, "error", err)
	return true
}

// finish ends a mutation span and records its outcome.
func finish(span trace.Span, op string, isAdmin bool, err error) {
	result := Result(err)
	if result == "error" {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("result", result))
	metrics.RecordPostMutation(op, isAdmin, result)
	span.End()
}

// Result classifies a use case error for metrics and logs.
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, entity.ErrValidationFailed):
		return "invalid"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrPostNotFound):
		return "not_found"
	default:
		return "error"
	}
}
