package backend

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cadenza-ml/cadenza/internal/model"
)

// The attribute protocol is the gateway's control plane: a console-style
// typed get/set surface over model-declared attributes. It is never used
// from the real-time thread, so each operation simply holds the model
// lock for its full duration.

// AvailableAttributes returns every attribute name the model declares,
// settable or not.
func (b *Backend) AvailableAttributes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, err := b.lockedModel()
	if err != nil {
		return nil
	}
	return slices.Clone(m.Attributes())
}

// SettableAttributes returns the attributes exposed for get/set: those the
// model enumerates through "get_attributes", or, failing that, those
// declared with a "<name>_params" schema.
func (b *Backend) SettableAttributes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, err := b.lockedModel()
	if err != nil {
		return nil
	}
	return settableAttributes(m)
}

// HasSettableAttribute reports whether the named attribute is settable.
func (b *Backend) HasSettableAttribute(name string) bool {
	return slices.Contains(b.SettableAttributes(), name)
}

// GetAttribute calls the attribute's "get_<name>" getter and normalizes
// its result to an ordered value sequence. Getters may return a list, a
// tuple, or a single scalar; all three are accepted, in that order.
func (b *Backend) GetAttribute(name string) ([]model.Value, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, err := b.lockedModel()
	if err != nil {
		return nil, err
	}

	getter, ok := m.Method("get_" + name)
	if !ok {
		return nil, fmt.Errorf("getter for attribute %s: %w", name, ErrAttributeNotFound)
	}
	res, err := getter(nil)
	if err != nil {
		return nil, fmt.Errorf("get_%s: %w", name, err)
	}

	if vs, ok := res.List(); ok {
		return vs, nil
	}
	if vs, ok := res.Tuple(); ok {
		return vs, nil
	}
	return []model.Value{res}, nil
}

// GetAttributeString fetches the attribute's values and formats each one
// according to its declared schema tag, space-joined: bool as
// "true"/"false", int as decimal, float with fixed six-digit precision,
// string as-is.
func (b *Backend) GetAttributeString(name string) (string, error) {
	values, err := b.GetAttribute(name)
	if err != nil {
		return "", err
	}
	tags, err := b.attributeSchema(name)
	if err != nil {
		return "", err
	}
	if len(values) < len(tags) {
		return "", fmt.Errorf("attribute %s: %d values for %d schema fields: %w",
			name, len(values), len(tags), ErrArgumentCount)
	}

	fields := make([]string, len(tags))
	for i, tag := range tags {
		switch tag {
		case model.TagBool:
			v, ok := values[i].Bool()
			if !ok {
				return "", fieldTypeError(name, i, tag, values[i])
			}
			fields[i] = strconv.FormatBool(v)
		case model.TagInt:
			v, ok := values[i].Int()
			if !ok {
				return "", fieldTypeError(name, i, tag, values[i])
			}
			fields[i] = strconv.FormatInt(v, 10)
		case model.TagFloat:
			v, ok := values[i].Float()
			if !ok {
				return "", fieldTypeError(name, i, tag, values[i])
			}
			fields[i] = fmt.Sprintf("%f", v)
		case model.TagStr:
			v, ok := values[i].Str()
			if !ok {
				return "", fieldTypeError(name, i, tag, values[i])
			}
			fields[i] = v
		default:
			return "", fmt.Errorf("bad type id %d at index %d: %w", int(tag), i, ErrBadTypeTag)
		}
	}
	return strings.Join(fields, " "), nil
}

// SetAttribute parses each positional argument according to the
// attribute's schema and invokes its "set_<name>" setter. A setter error
// or nonzero status is reported as rejection.
func (b *Backend) SetAttribute(name string, args []string) error {
	b.mu.Lock()
	m, err := b.lockedModel()
	if err != nil {
		b.mu.Unlock()
		return err
	}
	setter, ok := m.Method("set_" + name)
	b.mu.Unlock()
	if !ok {
		return fmt.Errorf("setter for attribute %s: %w", name, ErrAttributeNotFound)
	}

	tags, err := b.attributeSchema(name)
	if err != nil {
		return err
	}
	if len(args) != len(tags) {
		return fmt.Errorf("attribute %s takes %d arguments, got %d: %w",
			name, len(tags), len(args), ErrArgumentCount)
	}

	parsed := make([]model.Value, len(tags))
	for i, tag := range tags {
		v, err := parseField(args[i], tag)
		if err != nil {
			return fmt.Errorf("attribute %s argument %d: %w", name, i, err)
		}
		parsed[i] = v
	}

	b.mu.Lock()
	res, err := setter(parsed)
	b.mu.Unlock()
	if err != nil {
		return fmt.Errorf("setter for %s failed: %s: %w", name, err, ErrSetterRejected)
	}
	if code, ok := res.Int(); ok && code != 0 {
		return fmt.Errorf("setter for %s returned %d: %w", name, code, ErrSetterRejected)
	}
	return nil
}

// attributeSchema decodes the "<name>_params" schema declaration.
func (b *Backend) attributeSchema(name string) ([]model.TypeTag, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, err := b.lockedModel()
	if err != nil {
		return nil, err
	}

	v, ok := m.Attr(name + model.ParamsSuffix)
	if !ok {
		return nil, fmt.Errorf("parameters for attribute %s: %w", name, ErrSchemaMissing)
	}
	tags, ok := model.DecodeSchema(v)
	if !ok {
		return nil, fmt.Errorf("parameters for attribute %s are malformed: %w", name, ErrSchemaMissing)
	}
	return tags, nil
}

func parseField(arg string, tag model.TypeTag) (model.Value, error) {
	switch tag {
	case model.TagBool:
		v, err := strconv.ParseBool(arg)
		if err != nil {
			return model.Value{}, err
		}
		return model.BoolValue(v), nil
	case model.TagInt:
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return model.Value{}, err
		}
		return model.IntValue(v), nil
	case model.TagFloat:
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return model.Value{}, err
		}
		return model.FloatValue(v), nil
	case model.TagStr:
		return model.StrValue(arg), nil
	default:
		return model.Value{}, fmt.Errorf("bad type id %d: %w", int(tag), ErrBadTypeTag)
	}
}

func fieldTypeError(name string, index int, tag model.TypeTag, v model.Value) error {
	return fmt.Errorf("attribute %s field %d: schema declares %s, getter returned %s",
		name, index, tag, v.Kind())
}
