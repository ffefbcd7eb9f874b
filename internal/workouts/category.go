package workouts

import (
	"errors"
	"strings"
)

var ErrInvalidCategory = errors.New("invalid workout category")

// Canonical workout categories.
const (
	CategoryUpperBody        = "upper_body"
	CategoryLowerBody        = "lower_body"
	CategoryCore             = "core"
	CategoryCardio           = "cardio"
	CategoryStrengthTraining = "strength_training"
	CategoryMobility         = "mobility"
	CategoryFlexibility      = "flexibility"
	CategoryFullBody         = "full_body"
	CategoryBack             = "back"
)

// DefaultTaxonomy maps the raw workout-type labels sent by the mobile app
// to canonical categories. Keys are matched exactly unless the resolver is
// built with WithCaseFolding.
func DefaultTaxonomy() map[string]string {
	return map[string]string{
		"upper body": CategoryUpperBody,
		"arms":       CategoryUpperBody,
		"chest":      CategoryUpperBody,

		"lower body": CategoryLowerBody,
		"legs":       CategoryLowerBody,
		"glutes":     CategoryLowerBody,

		"core": CategoryCore,
		"abs":  CategoryCore,

		"cardio":   CategoryCardio,
		"HIIT":     CategoryCardio,
		"fat burn": CategoryCardio,

		"strength training":   CategoryStrengthTraining,
		"endurance":           CategoryStrengthTraining,
		"functional training": CategoryStrengthTraining,

		"mobility":   CategoryMobility,
		"stretching": CategoryMobility,
		"balance":    CategoryMobility,

		"yoga":    CategoryFlexibility,
		"pilates": CategoryFlexibility,

		"full body": CategoryFullBody,

		"back": CategoryBack,
	}
}

type ResolverOption func(r *Resolver)

// WithCaseFolding makes lookups case-insensitive.
func WithCaseFolding() ResolverOption {
	return func(r *Resolver) {
		r.foldCase = true
	}
}

// Resolver maps raw workout-type labels to canonical categories.
// The taxonomy is copied at construction and never mutated afterwards.
type Resolver struct {
	taxonomy map[string]string
	foldCase bool
}

func NewResolver(taxonomy map[string]string, opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}

	r.taxonomy = make(map[string]string, len(taxonomy))
	for label, category := range taxonomy {
		if r.foldCase {
			label = strings.ToLower(label)
		}
		r.taxonomy[label] = category
	}

	return r
}

func (r *Resolver) Resolve(rawLabel string) (string, error) {
	if r.foldCase {
		rawLabel = strings.ToLower(rawLabel)
	}
	category, ok := r.taxonomy[rawLabel]
	if !ok {
		return "", ErrInvalidCategory
	}
	return category, nil
}
