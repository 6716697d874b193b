package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is type of plugin description.
// ENUM(object, tag, shader, xnode, material)
type Kind int

type kindInfo struct {
	base   string   // description every plugin of this kind includes
	groups []string // property groups of the description
	parent string   // C++ base class
}

var kinds = map[Kind]kindInfo{
	KindObject:   {base: "Obase", groups: []string{"ID_OBJECTPROPERTIES"}, parent: "ObjectData"},
	KindTag:      {base: "Tbase", groups: []string{"ID_TAGPROPERTIES"}, parent: "TagData"},
	KindShader:   {base: "Xbase", groups: []string{"ID_SHADERPROPERTIES"}, parent: "ShaderData"},
	KindXnode:    {base: "Gvbase", groups: []string{"ID_GVPROPERTIES", "ID_GVPORTS"}, parent: "GvOperatorData"},
	KindMaterial: {base: "Mbase", groups: []string{"ID_MATERIALPROPERTIES"}, parent: "MaterialData"},
}

func (x Kind) info() kindInfo {
	if i, ok := kinds[x]; ok {
		return i
	}
	panic(fmt.Sprintf("unexpected plugin kind %d", x))
}

// ErrUnknownKind is returned when plugin kind cannot be guessed from its name.
var ErrUnknownKind = errors.New("unable to determine plugin type")

// KindFromName guesses plugin kind from conventional description name
// prefix: Ocube is an object, Tlook a tag, Xnoise a shader, GvMath an xnode
// and Mskin a material.
func KindFromName(name string) (Kind, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "o"):
		return KindObject, nil
	case strings.HasPrefix(lower, "t"):
		return KindTag, nil
	case strings.HasPrefix(lower, "x"):
		return KindShader, nil
	case strings.HasPrefix(lower, "gv"):
		return KindXnode, nil
	case strings.HasPrefix(lower, "m"):
		return KindMaterial, nil
	}
	return Kind(0), fmt.Errorf("%s: %w", name, ErrUnknownKind)
}
