package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/soporte360/internal/config"
	"github.com/spec-kit/soporte360/internal/domain"
)

// Classifier produces triage metadata for a ticket's free text. Any returned
// error means the caller must substitute domain.FallbackClassification().
type Classifier interface {
	Classify(ctx context.Context, titulo, descripcion string) (domain.Classification, error)
}

const systemPrompt = `Eres un experto en clasificación de tickets de soporte técnico.
Analiza el título y descripción del ticket y clasifícalo según:

PRIORIDAD: Alta, Media, Baja
CATEGORIA: Hardware, Software, Red, Seguridad, Acceso
DEPARTAMENTO: TI, Soporte, Infraestructura
TIEMPO_ESTIMADO: Estima en horas (ej: "2-4 horas", "1-2 días", "1 semana")

Responde SOLO en formato JSON exactamente así:
{
    "prioridad": "Alta/Media/Baja",
    "categoria": "Hardware/Software/Red/Seguridad/Acceso",
    "departamento": "TI/Soporte/Infraestructura",
    "tiempo_estimado": "estimación en texto"
}`

// HTTPClassifier calls an OpenAI-style chat completions endpoint.
type HTTPClassifier struct {
	cfg    config.ClassifierConfig
	client *http.Client
}

// NewHTTPClassifier builds the external classifier client.
func NewHTTPClassifier(cfg config.ClassifierConfig) *HTTPClassifier {
	return &HTTPClassifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	User     string        `json:"user,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type classificationPayload struct {
	Prioridad      string `json:"prioridad"`
	Categoria      string `json:"categoria"`
	Departamento   string `json:"departamento"`
	TiempoEstimado string `json:"tiempo_estimado"`
}

// Classify posts the ticket text to the model and decodes the structured
// result. Enum values the model got wrong fall back per field.
func (h *HTTPClassifier) Classify(ctx context.Context, titulo, descripcion string) (domain.Classification, error) {
	if h.cfg.APIKey == "" {
		return domain.Classification{}, fmt.Errorf("classifier api key not configured")
	}

	payload := chatRequest{
		Model: h.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("TÍTULO: %s\n\nDESCRIPCIÓN: %s", titulo, descripcion)},
		},
		User: "ticket-classification-" + uuid.NewString(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Classification{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(h.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.Classification{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.cfg.APIKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return domain.Classification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Classification{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return domain.Classification{}, err
	}
	if len(chat.Choices) == 0 {
		return domain.Classification{}, fmt.Errorf("classifier returned no choices")
	}

	return parseClassification(chat.Choices[0].Message.Content)
}

func parseClassification(content string) (domain.Classification, error) {
	var parsed classificationPayload
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &parsed); err != nil {
		return domain.Classification{}, fmt.Errorf("malformed classification response: %w", err)
	}

	fallback := domain.FallbackClassification()
	result := domain.Classification{
		Prioridad:      domain.TicketPrioridad(parsed.Prioridad),
		Categoria:      domain.TicketCategoria(parsed.Categoria),
		Departamento:   domain.TicketDepartamento(parsed.Departamento),
		TiempoEstimado: strings.TrimSpace(parsed.TiempoEstimado),
	}
	if !result.Prioridad.Valid() {
		result.Prioridad = fallback.Prioridad
	}
	if !result.Categoria.Valid() {
		result.Categoria = fallback.Categoria
	}
	if !result.Departamento.Valid() {
		result.Departamento = fallback.Departamento
	}
	if result.TiempoEstimado == "" {
		result.TiempoEstimado = fallback.TiempoEstimado
	}
	return result, nil
}

func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
