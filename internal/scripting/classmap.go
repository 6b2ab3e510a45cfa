// Package scripting loads an optional Lua script that maps pasted CSS
// class names to Text Model attributes, so a deployment can teach the
// paste pipeline about classes from its own stylesheet without a Go
// code change. The Lua state is opened with only the safe standard
// libraries, mirroring the plugin sandbox's library allow-list.
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/fork-archive-hub/blocky-editor/internal/registry"
)

// ClassMapGlobal is the Lua global the script must set: a table keyed
// by CSS class name, each value itself a table of attribute → value.
//
//	classAttributes = {
//	  bold = { bold = true },
//	  ["text-danger"] = { color = "red" },
//	}
const ClassMapGlobal = "classAttributes"

// LoadClassMap runs the Lua source in source and registers every
// entry of its classAttributes table into span via MapClass. It
// returns an error if the script fails to run or classAttributes is
// missing or malformed; a caller may choose to log and continue with
// whatever default mapping the registry already has.
func LoadClassMap(source string, span *registry.SpanRegistry) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)

	if err := L.DoString(source); err != nil {
		return fmt.Errorf("scripting: running class-map script: %w", err)
	}

	tbl, ok := L.GetGlobal(ClassMapGlobal).(*lua.LTable)
	if !ok {
		return fmt.Errorf("scripting: global %q is not a table", ClassMapGlobal)
	}

	var loadErr error
	tbl.ForEach(func(class, attrsVal lua.LValue) {
		if loadErr != nil {
			return
		}
		attrsTbl, ok := attrsVal.(*lua.LTable)
		if !ok {
			loadErr = fmt.Errorf("scripting: classAttributes[%s] is not a table", class.String())
			return
		}
		attrs := make(map[string]any)
		attrsTbl.ForEach(func(k, v lua.LValue) {
			attrs[k.String()] = fromLua(v)
		})
		span.MapClass(class.String(), attrs)
	})
	return loadErr
}

func fromLua(v lua.LValue) any {
	switch v.Type() {
	case lua.LTBool:
		return bool(v.(lua.LBool))
	case lua.LTNumber:
		return float64(v.(lua.LNumber))
	case lua.LTString:
		return v.String()
	default:
		return v.String()
	}
}

// openSafeLibraries opens only base/table/string/math, keeping io/os/
// debug/package closed so a class-map script can't touch the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}
