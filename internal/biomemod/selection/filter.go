package selection

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
)

// Filterable biome fields. Numeric fields are floats, so literals compared
// against them must be written as floats (temperature > 0.5, depth >= 0.0).
// They are compared at the float32 precision the biome stores.
var filterFields = map[string]*expr.Type{
	"key":           filtering.TypeString,
	"namespace":     filtering.TypeString,
	"path":          filtering.TypeString,
	"category":      filtering.TypeString,
	"precipitation": filtering.TypeString,
	"temperature":   filtering.TypeFloat,
	"downfall":      filtering.TypeFloat,
	"depth":         filtering.TypeFloat,
	"scale":         filtering.TypeFloat,
}

func filterDeclarations() (*filtering.Declarations, error) {
	decls := []filtering.DeclarationOption{
		filtering.DeclareStandardFunctions(),
		// Adjacent terms ("a b") join with FUZZY; treat it as AND.
		filtering.DeclareFunction(filtering.FunctionFuzzyAnd,
			filtering.NewFunctionOverload(filtering.FunctionFuzzyAnd+"_bool", filtering.TypeBool, filtering.TypeBool, filtering.TypeBool)),
	}
	for name, kind := range filterFields {
		decls = append(decls, filtering.DeclareIdent(name, kind))
	}
	return filtering.NewDeclarations(decls...)
}

// Filter compiles an AIP-160 filter expression into a predicate, e.g.
//
//	category = "jungle" AND temperature > 0.9
//	namespace = "minecraft" AND NOT key = "minecraft:bamboo_jungle"
//
// An empty expression matches every biome.
func Filter(expression string) (Predicate, error) {
	if strings.TrimSpace(expression) == "" {
		return All(), nil
	}
	decls, err := filterDeclarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(expression, decls)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidModifier, "parse filter", err)
	}
	checked := parsed.CheckedExpr.GetExpr()
	if err := validate(checked); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidModifier, "unsupported filter", err)
	}
	return func(c *Context) bool {
		ok, err := evaluate(checked, c.resolve)
		return err == nil && ok
	}, nil
}

// resolve returns the filter value of a field for this biome.
func (c *Context) resolve(name string) (any, bool) {
	weather := c.biome.Weather()
	switch name {
	case "key":
		return c.key.String(), true
	case "namespace":
		return c.key.Namespace, true
	case "path":
		return c.key.Path, true
	case "category":
		return c.biome.Category().String(), true
	case "precipitation":
		return weather.Precipitation.String(), true
	case "temperature":
		return weather.Temperature, true
	case "downfall":
		return weather.Downfall, true
	case "depth":
		return c.biome.Depth(), true
	case "scale":
		return c.biome.Scale(), true
	default:
		return nil, false
	}
}

// validate walks the checked expression once so that evaluation cannot fail
// on shape errors later.
func validate(e *expr.Expr) error {
	if e == nil {
		return nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	switch fn := call.CallExpr.Function; fn {
	case filtering.FunctionAnd, filtering.FunctionOr, filtering.FunctionFuzzyAnd:
		for _, arg := range call.CallExpr.Args {
			if err := validate(arg); err != nil {
				return err
			}
		}
		return nil
	case filtering.FunctionNot:
		if len(call.CallExpr.Args) != 1 {
			return fmt.Errorf("NOT requires 1 argument")
		}
		return validate(call.CallExpr.Args[0])
	case "=", "!=", "<", "<=", ">", ">=", ":":
		args := call.CallExpr.Args
		if len(args) != 2 {
			return fmt.Errorf("%s requires 2 arguments", fn)
		}
		name, err := extractFieldName(args[0])
		if err != nil {
			return err
		}
		if _, ok := filterFields[name]; !ok {
			return fmt.Errorf("unknown field: %s", name)
		}
		_, err = extractValue(args[1])
		return err
	default:
		return fmt.Errorf("unsupported function: %s", fn)
	}
}

type resolver func(name string) (any, bool)

func evaluate(e *expr.Expr, resolve resolver) (bool, error) {
	if e == nil {
		return true, nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return false, fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	args := call.CallExpr.Args
	switch fn := call.CallExpr.Function; fn {
	case filtering.FunctionAnd, filtering.FunctionFuzzyAnd:
		for _, arg := range args {
			ok, err := evaluate(arg, resolve)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case filtering.FunctionOr:
		for _, arg := range args {
			ok, err := evaluate(arg, resolve)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case filtering.FunctionNot:
		ok, err := evaluate(args[0], resolve)
		return !ok, err
	default:
		return evalCompare(args, resolve, fn)
	}
}

func evalCompare(args []*expr.Expr, resolve resolver, op string) (bool, error) {
	field, err := extractFieldName(args[0])
	if err != nil {
		return false, err
	}
	left, ok := resolve(field)
	if !ok {
		return false, fmt.Errorf("unknown field: %s", field)
	}
	right, err := extractValue(args[1])
	if err != nil {
		return false, err
	}
	if op == ":" {
		l, lok := left.(string)
		r, rok := right.(string)
		if !lok || !rok {
			return false, fmt.Errorf("has requires strings")
		}
		return strings.Contains(l, r), nil
	}

	cmp, err := compareValues(left, right)
	if err != nil {
		return false, err
	}
	switch op {
	case "=":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unsupported operator: %s", op)
	}
}

func extractFieldName(e *expr.Expr) (string, error) {
	if ident, ok := e.GetExprKind().(*expr.Expr_IdentExpr); ok {
		return ident.IdentExpr.GetName(), nil
	}
	return "", fmt.Errorf("expected identifier, got %T", e.GetExprKind())
}

func extractValue(e *expr.Expr) (any, error) {
	constant, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return nil, fmt.Errorf("expected constant, got %T", e.GetExprKind())
	}
	switch kind := constant.ConstExpr.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return float64(kind.Int64Value), nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

func compareValues(left, right any) (int, error) {
	switch l := left.(type) {
	case string:
		r, ok := right.(string)
		if !ok {
			return 0, fmt.Errorf("type mismatch: string vs %T", right)
		}
		return strings.Compare(l, r), nil
	case float32:
		wide, ok := right.(float64)
		if !ok {
			return 0, fmt.Errorf("type mismatch: number vs %T", right)
		}
		r := float32(wide)
		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("unsupported value type: %T", left)
	}
}
