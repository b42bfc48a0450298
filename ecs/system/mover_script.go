package system

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/prefabs"
)

type moverScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	failed     bool
}

const moverDispatchScript = `
update(__engine, __state)
`

func newMoverScriptRuntime(path string) (*moverScriptRuntime, error) {
	scriptBytes, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + moverDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	return &moverScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// run calls the script's update(engine, state) and returns the velocity it
// asked for in pixels per second. A script that never calls set_velocity
// keeps the mover's current per-frame change.
func (rt *moverScriptRuntime) run(m *component.Mover, r common.Rect) (float64, float64, error) {
	vx, vy := m.ChangeX*common.TPS, m.ChangeY*common.TPS
	engine := buildMoverScriptEngine(m, r, func(x, y float64) {
		vx, vy = x, y
	})

	if err := rt.compiled.Set("__engine", engine); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, 0, err
	}
	return vx, vy, nil
}

func buildMoverScriptEngine(m *component.Mover, r common.Rect, setVelocity func(x, y float64)) *tengo.ImmutableMap {
	cx, cy := r.Center()
	values := map[string]tengo.Object{
		"x":        &tengo.Float{Value: cx},
		"y":        &tengo.Float{Value: cy},
		"left":     &tengo.Float{Value: r.X},
		"right":    &tengo.Float{Value: r.Right()},
		"top":      &tengo.Float{Value: r.Y},
		"bottom":   &tengo.Float{Value: r.Bottom()},
		"width":    &tengo.Float{Value: r.W},
		"height":   &tengo.Float{Value: r.H},
		"dt":       &tengo.Float{Value: common.FixedStep},
		"speed":    &tengo.Float{Value: math.Hypot(m.ChangeX, m.ChangeY) * common.TPS},
		"change_x": &tengo.Float{Value: m.ChangeX},
		"change_y": &tengo.Float{Value: m.ChangeY},
	}

	bound := func(name string, v *float64) {
		if v == nil {
			values["has_"+name] = tengo.FalseValue
			values["boundary_"+name] = &tengo.Float{Value: 0}
			return
		}
		values["has_"+name] = tengo.TrueValue
		values["boundary_"+name] = &tengo.Float{Value: *v}
	}
	bound("left", m.BoundaryLeft)
	bound("right", m.BoundaryRight)
	bound("top", m.BoundaryTop)
	bound("bottom", m.BoundaryBottom)

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "vx", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "vy", Expected: "float", Found: args[1].TypeName()}
		}
		setVelocity(x, y)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
