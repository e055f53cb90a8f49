package script

import (
	"fmt"

	"github.com/louisbranch/biomemod/internal/biomemod/selection"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
)

// compileSelector builds the conjunction of every criterion in a select
// table. An empty table selects every biome.
func compileSelector(args arguments) (selection.Predicate, error) {
	var predicates []selection.Predicate

	if builtin, err := args.flag("builtin"); err != nil {
		return nil, err
	} else if builtin {
		predicates = append(predicates, selection.BuiltIn())
	}

	if args.has("dimension") {
		dimension, err := args.text("dimension")
		if err != nil {
			return nil, err
		}
		switch dimension {
		case "overworld":
			predicates = append(predicates, selection.FoundInOverworld())
		case "nether", "the_nether":
			predicates = append(predicates, selection.FoundInTheNether())
		case "end", "the_end":
			predicates = append(predicates, selection.FoundInTheEnd())
		default:
			return nil, fmt.Errorf("unknown dimension %q", dimension)
		}
	}

	names, err := args.list("categories")
	if err != nil {
		return nil, err
	}
	if len(names) > 0 {
		categories := make([]worldgen.Category, 0, len(names))
		for _, name := range names {
			category, err := worldgen.ParseCategory(name)
			if err != nil {
				return nil, err
			}
			categories = append(categories, category)
		}
		predicates = append(predicates, selection.Categories(categories...))
	}

	include, err := args.identifiers("include")
	if err != nil {
		return nil, err
	}
	if len(include) > 0 {
		predicates = append(predicates, selection.IncludeByKey(include...))
	}
	exclude, err := args.identifiers("exclude")
	if err != nil {
		return nil, err
	}
	if len(exclude) > 0 {
		predicates = append(predicates, selection.ExcludeByKey(exclude...))
	}

	if args.has("has_feature") {
		key, err := args.identifier("has_feature")
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, selection.HasFeature(key))
	}
	if args.has("has_structure") {
		key, err := args.identifier("has_structure")
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, selection.HasStructure(key))
	}

	if args.has("filter") {
		expression, err := args.text("filter")
		if err != nil {
			return nil, err
		}
		filter, err := selection.Filter(expression)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, filter)
	}

	if len(predicates) == 0 {
		return selection.All(), nil
	}
	return selection.And(predicates...), nil
}
