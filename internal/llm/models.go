package llm

// KnownModels содержит модели Groq, для которых есть человекочитаемое имя.
// Список не ограничивает MODEL_ID: любую другую модель сервис примет как есть.
var KnownModels = []ModelInfo{
	{
		ID:   "llama-3.3-70b-versatile",
		Name: "Llama 3.3 70B",
	},
	{
		ID:   "llama-3.1-8b-instant",
		Name: "Llama 3.1 8B Instant",
	},
	{
		ID:   "openai/gpt-oss-120b",
		Name: "GPT-OSS 120B",
	},
	{
		ID:   "qwen/qwen3-32b",
		Name: "Qwen3 32B",
	},
	{
		ID:   "gemma2-9b-it",
		Name: "Gemma 2 9B",
	},
}

// ModelInfo описывает модель.
type ModelInfo struct {
	ID   string // Идентификатор модели для API
	Name string // Короткое название для отображения
}

// GetModelByID возвращает информацию о модели или nil.
func GetModelByID(modelID string) *ModelInfo {
	for _, m := range KnownModels {
		if m.ID == modelID {
			return &m
		}
	}
	return nil
}

// GetModelName возвращает короткое название модели по её ID.
// Если модель не найдена, возвращает сам ID.
func GetModelName(modelID string) string {
	if info := GetModelByID(modelID); info != nil {
		return info.Name
	}
	return modelID
}
