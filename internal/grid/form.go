package grid

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Form field names used when the grid is edited through a dialog.
const (
	FieldCenterX = "center_x"
	FieldCenterY = "center_y"
	FieldRadius  = "radius"
	FieldAzimuth = "azimuth"
)

// FormValues returns the current model as form text.
func (m Model) FormValues() map[string]string {
	v := map[string]string{
		FieldCenterX: strconv.Itoa(m.Center.X),
		FieldCenterY: strconv.Itoa(m.Center.Y),
		FieldRadius:  strconv.Itoa(m.Radius),
		FieldAzimuth: "",
	}
	if m.Azimuth != nil {
		v[FieldAzimuth] = strconv.FormatFloat(*m.Azimuth, 'f', -1, 64)
	}
	return v
}

// ParseForm builds a model from dialog text and validates it against
// bounds. A blank azimuth leaves the reference unset.
func ParseForm(values map[string]string, bounds image.Rectangle) (Model, error) {
	var m Model
	var err error
	if m.Center.X, err = formInt(values, FieldCenterX); err != nil {
		return Model{}, err
	}
	if m.Center.Y, err = formInt(values, FieldCenterY); err != nil {
		return Model{}, err
	}
	if m.Radius, err = formInt(values, FieldRadius); err != nil {
		return Model{}, err
	}
	if s := strings.TrimSpace(values[FieldAzimuth]); s != "" {
		a, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Model{}, fmt.Errorf("%w: %s %q is not a number", ErrInvalidParameters, FieldAzimuth, s)
		}
		m.Azimuth = &a
	}
	if err := m.Validate(bounds); err != nil {
		return Model{}, err
	}
	return m, nil
}

func formInt(values map[string]string, name string) (int, error) {
	s := strings.TrimSpace(values[name])
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidParameters, name, s)
	}
	return n, nil
}
