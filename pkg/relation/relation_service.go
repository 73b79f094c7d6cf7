package relation

import (
	"context"
	"errors"
	"fmt"

	"foodgram/domain"
	"foodgram/internal/metrics"
)

type (
	Kind      string
	Direction string
)

const (
	KindFavorite     Kind = "favorite"
	KindShoppingCart Kind = "shopping_cart"
	KindFollow       Kind = "follow"

	Add    Direction = "add"
	Remove Direction = "remove"
)

var (
	duplicateMessages = map[Kind]string{
		KindFavorite:     "recipe is already in favorites",
		KindShoppingCart: "recipe is already in the shopping cart",
		KindFollow:       "already subscribed to this author",
	}
	missingMessages = map[Kind]string{
		KindFavorite:     "recipe is not in favorites",
		KindShoppingCart: "recipe is not in the shopping cart",
		KindFollow:       "subscription does not exist",
	}
)

type (
	// Target is the entity on the far side of a relation kind.
	Target interface {
		Exists(ctx context.Context, id uint) (bool, error)
		Represent(ctx context.Context, viewerID, id uint, opts RepresentOptions) (any, error)
		NotFound() error
	}

	RepresentOptions struct {
		RecipesLimit *int
	}

	Request struct {
		Kind         Kind
		Direction    Direction
		ActorID      uint
		TargetID     uint
		RecipesLimit *int
	}

	RelationService interface {
		// Toggle returns the target representation on Add and nil on Remove.
		Toggle(ctx context.Context, req Request) (any, error)
	}

	relationService struct {
		relationRepository RelationRepository
		targets            map[Kind]Target
	}
)

func NewRelationService(relationRepository RelationRepository, targets map[Kind]Target) RelationService {
	return &relationService{
		relationRepository: relationRepository,
		targets:            targets,
	}
}

func (s *relationService) Toggle(ctx context.Context, req Request) (any, error) {
	res, err := s.toggle(ctx, req)
	metrics.RelationToggles.WithLabelValues(string(req.Kind), string(req.Direction), metrics.Outcome(err)).Inc()
	return res, err
}

func (s *relationService) toggle(ctx context.Context, req Request) (any, error) {
	target, ok := s.targets[req.Kind]
	if !ok {
		return nil, fmt.Errorf("no target registered for relation kind %q", req.Kind)
	}
	if req.ActorID == 0 {
		return nil, domain.ErrTokenNotFound
	}

	exists, err := target.Exists(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, target.NotFound()
	}

	switch req.Direction {
	case Add:
		return s.add(ctx, target, req)
	case Remove:
		return nil, s.remove(ctx, req)
	default:
		return nil, domain.NewValidationError("direction", fmt.Sprintf("unknown direction %q", req.Direction))
	}
}

func (s *relationService) add(ctx context.Context, target Target, req Request) (any, error) {
	if req.Kind == KindFollow && req.ActorID == req.TargetID {
		return nil, domain.NewError(domain.CodeSelfReference, "", "cannot subscribe to yourself")
	}

	if err := s.relationRepository.Add(ctx, req.Kind, req.ActorID, req.TargetID); err != nil {
		if errors.Is(err, ErrPairExists) {
			return nil, domain.NewError(domain.CodeDuplicateRelation, "", duplicateMessages[req.Kind])
		}
		return nil, err
	}

	return target.Represent(ctx, req.ActorID, req.TargetID, RepresentOptions{RecipesLimit: req.RecipesLimit})
}

func (s *relationService) remove(ctx context.Context, req Request) error {
	removed, err := s.relationRepository.Remove(ctx, req.Kind, req.ActorID, req.TargetID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.NewError(domain.CodeRelationNotFound, "", missingMessages[req.Kind])
	}
	return nil
}
