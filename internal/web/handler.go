package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"codeassist/internal/httpserver"
	"codeassist/internal/llm"
	"codeassist/internal/middleware"

	"go.uber.org/zap"
)

const (
	emptyPromptWarning = "Please enter a query."
	maxBodyBytes       = 1 << 20
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type Deps struct {
	LLM       llm.Client
	Logger    *zap.Logger
	ModelName string
}

// Handler обслуживает страницу ассистента и JSON API поверх llm.Client.
type Handler struct {
	llm       llm.Client
	logger    *zap.Logger
	modelName string
}

func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		llm:       deps.LLM,
		logger:    logger,
		modelName: deps.ModelName,
	}
}

type pageData struct {
	ModelName string
	Prompt    string
	Warning   string
	Error     string
	Result    string
}

// Index отдаёт пустую форму.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{ModelName: h.modelName})
}

// Submit обрабатывает отправку формы. Пустой запрос до модели не доходит,
// запрос из одних пробелов уходит как есть.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "cannot parse form", http.StatusBadRequest)
		return
	}

	prompt := r.PostFormValue("prompt")
	data := pageData{ModelName: h.modelName, Prompt: prompt}

	if prompt == "" {
		data.Warning = emptyPromptWarning
		h.render(w, r, data)
		return
	}

	answer, err := h.llm.Forward(r.Context(), prompt)
	if err != nil {
		h.logError(r, err)
		data.Error = err.Error()
	} else {
		data.Result = answer
	}
	h.render(w, r, data)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate — JSON-вариант Submit.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpserver.WriteJSONError(w, http.StatusBadRequest, "bad_request", "cannot parse request")
		return
	}
	if req.Prompt == "" {
		httpserver.WriteJSONError(w, http.StatusBadRequest, "bad_request", emptyPromptWarning)
		return
	}

	answer, err := h.llm.Forward(r.Context(), req.Prompt)
	if err != nil {
		h.logError(r, err)
		httpserver.WriteJSONError(w, http.StatusBadGateway, errorCode(err), err.Error())
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, generateResponse{Text: answer})
}

func errorCode(err error) string {
	var fe *llm.ForwardError
	if errors.As(err, &fe) {
		return string(fe.Kind)
	}
	return "internal"
}

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.Error("llm forward error",
		zap.String("code", errorCode(err)),
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
	)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render page failed",
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
