package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	sel, err := s.selectTarget(ctx, req.Target)
	if err != nil {
		return ResolveResult{}, err
	}
	options, vars, err := s.resolveSelection(ctx, sel)
	if err != nil {
		return ResolveResult{}, err
	}
	packageID := options.PackageID(sel.platform)
	log.Ctx(ctx).Info().
		Str("recipe", sel.recipe.Ref()).
		Str("package_id", packageID).
		Int("variables", len(vars)).
		Msg("configuration resolved")
	return ResolveResult{
		Recipe:    sel.recipe,
		Platform:  sel.platform,
		Options:   options,
		Variables: vars,
		PackageID: packageID,
	}, nil
}
