package assistant

import (
	"strconv"
	"strings"
)

// StepKind enumera los pasos del diálogo guiado. Al ser un conjunto
// cerrado, el dispatch del motor puede cubrirlos exhaustivamente.
type StepKind int

const (
	StepStart StepKind = iota
	StepMainMenu
	StepSelectType
	StepAwaitingDescription
	StepCheckStatus
)

// Etiquetas persistidas en chat_sessions.step. Se mantienen legibles
// para poder inspeccionar una conversación directamente en la base.
const (
	stepTagStart        = "INICIO"
	stepTagMainMenu     = "MENU_PRINCIPAL"
	stepTagSelectType   = "SELECCIONAR_TIPO"
	stepTagCheckStatus  = "CONSULTAR_ESTADO"
	stepTagAwaitingDesc = "ESPERANDO_DESCRIPCION_"
)

// Step es la posición del remitente dentro del diálogo. TypeID solo
// aplica cuando Kind es StepAwaitingDescription: es el tipo de
// solicitud elegido mientras esperamos la descripción.
type Step struct {
	Kind   StepKind
	TypeID int64
}

// ParseStep decodifica la etiqueta guardada. Una etiqueta desconocida
// (o un TypeID ilegible) vuelve al inicio: el peor caso de un dato
// corrupto es repetir el saludo, nunca un paso imposible.
func ParseStep(tag string) Step {
	switch tag {
	case stepTagStart:
		return Step{Kind: StepStart}
	case stepTagMainMenu:
		return Step{Kind: StepMainMenu}
	case stepTagSelectType:
		return Step{Kind: StepSelectType}
	case stepTagCheckStatus:
		return Step{Kind: StepCheckStatus}
	}
	if rest, ok := strings.CutPrefix(tag, stepTagAwaitingDesc); ok {
		typeID, err := strconv.ParseInt(rest, 10, 64)
		if err == nil && typeID > 0 {
			return Step{Kind: StepAwaitingDescription, TypeID: typeID}
		}
	}
	return Step{Kind: StepStart}
}

// Tag devuelve la etiqueta que se persiste para este paso.
func (s Step) Tag() string {
	switch s.Kind {
	case StepMainMenu:
		return stepTagMainMenu
	case StepSelectType:
		return stepTagSelectType
	case StepCheckStatus:
		return stepTagCheckStatus
	case StepAwaitingDescription:
		return stepTagAwaitingDesc + strconv.FormatInt(s.TypeID, 10)
	default:
		return stepTagStart
	}
}
