package controllers

import (
	"encoding/xml"
	"net/http"
	"os"

	"tramita/tools"

	"github.com/gin-gonic/gin"
)

// twimlResponse es el documento XML que Twilio espera como respuesta
// del webhook: <Response><Message>texto</Message></Response>.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// GET /api/webhook
//
// Handshake de verificación del panel de Meta:
// GET /webhook?hub.mode=subscribe&hub.verify_token=...&hub.challenge=...
func WebhookVerify(c *gin.Context) {
	verifyToken := os.Getenv("WEBHOOK_VERIFY_TOKEN")
	if verifyToken == "" {
		RespondError(c, "WEBHOOK_VERIFY_TOKEN not set", http.StatusInternalServerError)
		return
	}

	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == verifyToken && challenge != "" {
		c.String(http.StatusOK, "%s", challenge)
		return
	}

	RespondError(c, "forbidden", http.StatusForbidden)
}

// POST /api/webhook
//
// Webhook entrante estilo Twilio: form con Body y From (el From llega
// como "whatsapp:+57310..."). La respuesta viaja en el propio HTTP
// response como TwiML; no hay envío saliente separado para el chat.
func WhatsAppWebhook(c *gin.Context) {
	engine := EngineInstance(c)
	if engine == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	body := c.PostForm("Body")
	from := c.PostForm("From")

	phone, err := tools.NormalizePhone(from)
	if err != nil {
		RespondError(c, "remitente inválido", http.StatusBadRequest)
		return
	}

	reply, err := engine.HandleMessage(phone, body)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := xml.Marshal(twimlResponse{Message: reply})
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml")
	c.String(http.StatusOK, "%s", xml.Header+string(out))
}
