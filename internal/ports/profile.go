package ports

import "native-recipes/internal/types"

type ProfilePort interface {
	LoadProfile(path string) (types.Profile, error)
}
