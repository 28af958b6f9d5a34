package backend

import (
	"github.com/cadenza-ml/cadenza/internal/model"
)

// catalog caches the usable methods of the loaded model and their decoded
// params. It is rebuilt from scratch on every (re)load and published
// atomically, so the real-time path can consult it without taking the
// model lock.
type catalog struct {
	methods []string
	params  map[string]model.MethodParams
}

func emptyCatalog() *catalog {
	return &catalog{params: make(map[string]model.MethodParams)}
}

// buildCatalog discovers the model's user-invocable methods. Called on a
// freshly constructed model before it is published to other goroutines.
func buildCatalog(m model.Model) *catalog {
	c := emptyCatalog()
	for _, name := range availableMethods(m) {
		c.methods = append(c.methods, name)
		v, ok := m.Attr(name + model.ParamsSuffix)
		if !ok {
			continue // method not usable, skipping
		}
		p, ok := model.DecodeParams(v)
		if !ok {
			continue
		}
		c.params[name] = p
	}
	return c
}

// availableMethods prefers the model's own "get_methods" introspection and
// falls back to scanning declared methods for a "<name>_params" schema;
// a method without one is not user-invocable.
func availableMethods(m model.Model) []string {
	if fn, ok := m.Method("get_methods"); ok {
		if res, err := fn(nil); err == nil {
			if names, ok := stringList(res); ok {
				return names
			}
		}
	}

	var names []string
	for _, name := range m.Methods() {
		if _, ok := m.Attr(name + model.ParamsSuffix); ok {
			names = append(names, name)
		}
	}
	return names
}

// settableAttributes mirrors availableMethods for the attribute surface:
// "get_attributes" introspection first, then a scan of declared attributes
// for a "<name>_params" schema.
func settableAttributes(m model.Model) []string {
	if fn, ok := m.Method("get_attributes"); ok {
		if res, err := fn(nil); err == nil {
			if names, ok := stringList(res); ok {
				return names
			}
		}
	}

	var names []string
	for _, name := range m.Attributes() {
		if _, ok := m.Attr(name + model.ParamsSuffix); ok {
			names = append(names, name)
		}
	}
	return names
}

func stringList(v model.Value) ([]string, bool) {
	vs, ok := v.List()
	if !ok {
		return nil, false
	}
	names := make([]string, len(vs))
	for i := range vs {
		s, ok := vs[i].Str()
		if !ok {
			return nil, false
		}
		names[i] = s
	}
	return names, true
}
