package assistant

import (
	"fmt"
	"strings"

	"tramita/models"
)

// Textos del asistente. Todos los errores de entrada del usuario se
// resuelven aquí como texto de respuesta; nada de esto sube como error.

const replyEmptyMessage = "⚠️ No recibí ningún mensaje. Por favor escribe tu consulta."

const replyWelcomeMenu = "👋 ¡Hola! Bienvenido al sistema de solicitudes académicas.\n\n" +
	"¿Qué deseas hacer?\n" +
	"1️⃣  Crear una solicitud\n" +
	"2️⃣  Consultar estado de mi solicitud\n" +
	"3️⃣  Ver mis solicitudes\n" +
	"4️⃣  Ayuda\n\n" +
	"Responde con el número de la opción."

const replyAskReferenceCode = "🔍 Escribe el código de tu solicitud.\nEjemplo: *SOL-2026-00001*"

const replyHelp = "ℹ️ *Ayuda:*\n\n" +
	"• Escribe *hola* para ver el menú\n" +
	"• Escribe *1* para crear una solicitud\n" +
	"• Escribe *2* para consultar estado\n" +
	"• Escribe *3* para ver tus solicitudes\n" +
	"• Escribe *adios* para finalizar"

const replyMenuRange = "Por favor responde con un número del 1 al 4. Escribe *hola* para ver el menú."

const replyTypeRange = "Por favor responde con un número del 1 al 9."

const replyUnregistered = "⚠️ Tu número no está registrado. Regístrate primero en la plataforma."

const replyNoRequests = "📭 No tienes solicitudes registradas aún."

const replyCodeFormat = "Por favor escribe el código en formato *SOL-2026-00001*"

const replyGoodbye = "👋 ¡Hasta luego! Que tengas un excelente día. 😊"

const replyFallback = "🤔 No entendí tu mensaje.\nEscribe *hola* para ver el menú principal."

const replyCreateFailed = "⚠️ No pude crear la solicitud. Escribe *hola* para intentarlo de nuevo."

func replyTypeList(types []models.RequestType) string {
	var b strings.Builder
	b.WriteString("📋 ¿Qué tipo de solicitud necesitas?\n\n")
	for i, t := range types {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Name)
	}
	b.WriteString("\nResponde con el número.")
	return b.String()
}

func replyTypeChosen(typeName string) string {
	return fmt.Sprintf("✅ Entendido: *%s*\n\nPor favor descríbeme brevemente el motivo de tu solicitud.", typeName)
}

func replyRequestCreated(code string) string {
	return fmt.Sprintf("✅ *Solicitud creada exitosamente*\n\n"+
		"📄 Código: *%s*\n"+
		"Estado: Pendiente\n"+
		"Guarda este código para hacer seguimiento.\n\n"+
		"Escribe *hola* para volver al menú.", code)
}

func replyRequestList(requests []models.Request) string {
	var b strings.Builder
	b.WriteString("📋 *Tus solicitudes:*\n\n")
	for _, r := range requests {
		fmt.Fprintf(&b, "• %s — %s — *%s*\n", r.ReferenceCode, r.RequestType.Name, r.Status.Name)
	}
	return b.String()
}

func replyRequestDetail(r *models.Request) string {
	created := ""
	if r.CreatedAt != nil {
		created = r.CreatedAt.Format("02/01/2006")
	}
	return fmt.Sprintf("📄 *%s*\n\n"+
		"Tipo: %s\n"+
		"Estado: *%s*\n"+
		"Fecha: %s\n\n"+
		"Escribe *hola* para volver al menú.",
		r.ReferenceCode, r.RequestType.Name, r.Status.Name, created)
}

func replyCodeNotFound(code string) string {
	return fmt.Sprintf("❌ No encontré la solicitud *%s*. Verifica el código.", code)
}
