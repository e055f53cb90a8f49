// Package script loads biome modifier packs written in Lua.
//
// A pack script builds a Pack and returns it:
//
//	local pack = Pack.new("example:desert_extras")
//	pack:add_feature{
//	  select = { categories = { "desert" } },
//	  step = "vegetal_decoration",
//	  feature = "minecraft:patch_cactus",
//	}
//	return pack
//
// Scripts only declare modifiers. They run once at load time and are not
// called back during a pass.
package script

import (
	"fmt"
	"math"
	"os"

	"github.com/Shopify/go-lua"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
)

const packTypeName = "biomemod.pack"

// rawPack collects the steps a script declares before they are compiled.
type rawPack struct {
	id    string
	steps []rawStep
}

type rawStep struct {
	kind string
	args map[string]any
}

// LoadFile runs the pack script at path.
func LoadFile(path string) (*Pack, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	return Load(path, string(src))
}

// Load runs a pack script held in memory. name is used in error messages.
func Load(name, src string) (*Pack, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)

	if err := lua.LoadBuffer(state, src, name, ""); err != nil {
		return nil, scriptError(name, "load lua", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, scriptError(name, "run lua", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, scriptError(name, "pack script must return a Pack", nil)
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	raw, ok := ud.(*rawPack)
	if !ok || raw == nil {
		return nil, scriptError(name, "pack script returned an invalid Pack", nil)
	}
	pack, err := compile(raw)
	if err != nil {
		return nil, scriptError(name, "compile pack", err)
	}
	return pack, nil
}

func scriptError(name, message string, cause error) error {
	metadata := map[string]string{"Script": name}
	if cause == nil {
		return apperrors.WithMetadata(apperrors.CodeScriptInvalid, fmt.Sprintf("%s: %s", name, message), metadata)
	}
	return apperrors.WrapWithMetadata(apperrors.CodeScriptInvalid, fmt.Sprintf("%s: %s", name, message), metadata, cause)
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, packTypeName)
	state.NewTable()
	lua.SetFunctions(state, packMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, packConstructor, 0)
	state.SetGlobal("Pack")
}

var packConstructor = []lua.RegistryFunction{
	{Name: "new", Function: packNew},
}

func packNew(state *lua.State) int {
	id := lua.CheckString(state, 1)
	state.PushUserData(&rawPack{id: id})
	lua.SetMetaTableNamed(state, packTypeName)
	return 1
}

var packMethods = []lua.RegistryFunction{
	{Name: "add_feature", Function: stepMethod(kindAddFeature)},
	{Name: "remove_feature", Function: stepMethod(kindRemoveFeature)},
	{Name: "add_carver", Function: stepMethod(kindAddCarver)},
	{Name: "remove_carver", Function: stepMethod(kindRemoveCarver)},
	{Name: "add_structure", Function: stepMethod(kindAddStructure)},
	{Name: "remove_structure", Function: stepMethod(kindRemoveStructure)},
	{Name: "add_spawn", Function: stepMethod(kindAddSpawn)},
	{Name: "remove_spawns", Function: stepMethod(kindRemoveSpawns)},
	{Name: "set_spawn_cost", Function: stepMethod(kindSetSpawnCost)},
	{Name: "set_surface_builder", Function: stepMethod(kindSetSurfaceBuilder)},
	{Name: "weather", Function: stepMethod(kindWeather)},
	{Name: "effects", Function: stepMethod(kindEffects)},
}

// stepMethod records one declarative step and returns the pack for chaining.
func stepMethod(kind string) lua.Function {
	return func(state *lua.State) int {
		pack := checkPack(state)
		lua.CheckType(state, 2, lua.TypeTable)
		pack.steps = append(pack.steps, rawStep{kind: kind, args: tableToMap(state, 2)})
		state.PushValue(1)
		return 1
	}
}

func checkPack(state *lua.State) *rawPack {
	ud := lua.CheckUserData(state, 1, packTypeName)
	if pack, ok := ud.(*rawPack); ok && pack != nil {
		return pack
	}
	lua.ArgumentError(state, 1, "pack expected")
	return nil
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns a []any for sequences and a map otherwise.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
