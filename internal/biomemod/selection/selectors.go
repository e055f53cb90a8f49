package selection

import (
	"slices"

	"github.com/louisbranch/biomemod/internal/world/registry"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// Predicate decides whether a modifier applies to a biome.
type Predicate func(*Context) bool

// All matches every biome.
func All() Predicate {
	return func(*Context) bool { return true }
}

// BuiltIn matches biomes that also exist in the built-in registries.
func BuiltIn() Predicate {
	return func(c *Context) bool { return c.IsBuiltIn() }
}

var (
	netherCategories = []worldgen.Category{worldgen.CategoryNether}
	endCategories    = []worldgen.Category{worldgen.CategoryTheEnd}
)

// FoundInOverworld matches biomes whose category is neither nether nor end.
func FoundInOverworld() Predicate {
	return Not(Or(Categories(netherCategories...), Categories(endCategories...)))
}

// FoundInTheNether matches nether biomes.
func FoundInTheNether() Predicate {
	return Categories(netherCategories...)
}

// FoundInTheEnd matches end biomes.
func FoundInTheEnd() Predicate {
	return Categories(endCategories...)
}

// Categories matches biomes in any of categories.
func Categories(categories ...worldgen.Category) Predicate {
	categories = slices.Clone(categories)
	return func(c *Context) bool {
		return slices.Contains(categories, c.Biome().Category())
	}
}

// IncludeByKey matches the listed biomes.
func IncludeByKey(keys ...registry.Identifier) Predicate {
	keys = slices.Clone(keys)
	return func(c *Context) bool { return slices.Contains(keys, c.BiomeKey()) }
}

// ExcludeByKey matches every biome except the listed ones.
func ExcludeByKey(keys ...registry.Identifier) Predicate {
	return Not(IncludeByKey(keys...))
}

// HasFeature matches biomes that already place the feature under key.
func HasFeature(key registry.Identifier) Predicate {
	return func(c *Context) bool { return c.HasFeature(key) }
}

// HasStructure matches biomes that already list the structure under key.
func HasStructure(key registry.Identifier) Predicate {
	return func(c *Context) bool { return c.HasStructure(key) }
}

// And matches when every predicate matches. An empty And matches everything.
func And(predicates ...Predicate) Predicate {
	predicates = slices.Clone(predicates)
	return func(c *Context) bool {
		for _, p := range predicates {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(predicates ...Predicate) Predicate {
	predicates = slices.Clone(predicates)
	return func(c *Context) bool {
		for _, p := range predicates {
			if p(c) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(c *Context) bool { return !p(c) }
}
