package api

import "github.com/amirsalarabedini/LinguaTask/model"

type captionRequest struct {
	InputText string `json:"input_text"`
	Topic     string `json:"topic"`
	ModelName string `json:"model_name"`
	Provider  string `json:"provider"`
}

type summaryRequest struct {
	InputText string `json:"input_text"`
	ModelName string `json:"model_name"`
	Provider  string `json:"provider"`
}

type translationRequest struct {
	InputText      string `json:"input_text"`
	TargetLanguage string `json:"target_language"`
	ModelName      string `json:"model_name"`
	Provider       string `json:"provider"`
}

type taskResponse struct {
	OutputText string `json:"output_text"`
}

type modelsResponse struct {
	ChatProviders []model.ChatModel `json:"chatProviders"`
}

// Models lists the provider/model pairs available for task requests.
func (c *Client) Models() ([]model.ChatModel, error) {
	var resp modelsResponse
	if err := c.get("/models", &resp); err != nil {
		return nil, err
	}
	return resp.ChatProviders, nil
}

// Caption runs the caption generation task.
func (c *Client) Caption(inputText, topic, modelName, provider string) (string, error) {
	var resp taskResponse
	err := c.postJSON("/tasks/caption", captionRequest{
		InputText: inputText,
		Topic:     topic,
		ModelName: modelName,
		Provider:  provider,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.OutputText, nil
}

// Summary runs the summarization task.
func (c *Client) Summary(inputText, modelName, provider string) (string, error) {
	var resp taskResponse
	err := c.postJSON("/tasks/summary", summaryRequest{
		InputText: inputText,
		ModelName: modelName,
		Provider:  provider,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.OutputText, nil
}

// Translate runs the translation task.
func (c *Client) Translate(inputText, targetLanguage, modelName, provider string) (string, error) {
	var resp taskResponse
	err := c.postJSON("/tasks/translation", translationRequest{
		InputText:      inputText,
		TargetLanguage: targetLanguage,
		ModelName:      modelName,
		Provider:       provider,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.OutputText, nil
}

// History lists the current user's past tasks, newest first.
func (c *Client) History() ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get("/tasks/history", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
