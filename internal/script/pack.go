package script

import (
	"fmt"

	"github.com/louisbranch/biomemod/internal/biomemod/modifier"
	"github.com/louisbranch/biomemod/internal/biomemod/selection"
	"github.com/louisbranch/biomemod/internal/world/registry"
)

// Pack is a compiled modifier pack.
type Pack struct {
	ID    registry.Identifier
	Rules []Rule
}

// Rule is one modifier declared by a pack.
type Rule struct {
	Kind     string
	ID       registry.Identifier
	Phase    modifier.Phase
	Order    int
	HasOrder bool
	Selector selection.Predicate
	Action   modifier.ContextOnly
}

// Register adds every rule to modifiers. Rules sharing an id share an order,
// so the last explicit order declared for an id wins.
func (p *Pack) Register(modifiers *modifier.Registry) error {
	orders := map[registry.Identifier]int{}
	for _, rule := range p.Rules {
		if err := modifiers.Add(rule.ID, rule.Phase, rule.Selector, rule.Action); err != nil {
			return fmt.Errorf("register %s: %w", rule.ID, err)
		}
		if rule.HasOrder {
			orders[rule.ID] = rule.Order
		}
	}
	for id, order := range orders {
		modifiers.ChangeOrder(id, order)
	}
	return nil
}

func compile(raw *rawPack) (*Pack, error) {
	packID, err := registry.ParseIdentifier(raw.id)
	if err != nil {
		return nil, fmt.Errorf("pack id: %w", err)
	}
	pack := &Pack{ID: packID}
	for i, step := range raw.steps {
		rule, err := compileRule(packID, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.kind, err)
		}
		pack.Rules = append(pack.Rules, rule)
	}
	return pack, nil
}

func compileRule(packID registry.Identifier, step rawStep) (Rule, error) {
	args := arguments(step.args)
	rule := Rule{Kind: step.kind, ID: packID, Phase: defaultPhase(step.kind)}

	if args.has("id") {
		id, err := args.identifier("id")
		if err != nil {
			return Rule{}, err
		}
		rule.ID = id
	}
	if args.has("phase") {
		name, err := args.text("phase")
		if err != nil {
			return Rule{}, err
		}
		if rule.Phase, err = modifier.ParsePhase(name); err != nil {
			return Rule{}, err
		}
	}
	if args.has("order") {
		order, err := args.integer("order")
		if err != nil {
			return Rule{}, err
		}
		rule.Order = order
		rule.HasOrder = true
	}

	selector, err := compileSelector(args.table("select"))
	if err != nil {
		return Rule{}, fmt.Errorf("select: %w", err)
	}
	rule.Selector = selector

	build, ok := actionBuilders[step.kind]
	if !ok {
		return Rule{}, fmt.Errorf("unknown step kind %q", step.kind)
	}
	if rule.Action, err = build(args); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

func defaultPhase(kind string) modifier.Phase {
	switch kind {
	case kindAddFeature, kindAddCarver, kindAddStructure, kindAddSpawn:
		return modifier.PhaseAdditions
	case kindRemoveFeature, kindRemoveCarver, kindRemoveStructure, kindRemoveSpawns:
		return modifier.PhaseRemovals
	default:
		return modifier.PhaseReplacements
	}
}
