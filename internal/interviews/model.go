package interviews

import "time"

// TechnicalQuestion is a single technical prompt with a model answer.
type TechnicalQuestion struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

// BehavioralQuestion follows the STAR method.
type BehavioralQuestion struct {
	Question  string `json:"question"`
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

// QuestionSet is the generated interview prep content.
type QuestionSet struct {
	TechnicalQuestions  []TechnicalQuestion  `json:"technicalQuestions"`
	BehavioralQuestions []BehavioralQuestion `json:"behavioralQuestions"`
}

// Interview is a stored question set tied to a resume and job description.
type Interview struct {
	ID               string      `json:"id"`
	UserID           string      `json:"userId"`
	ResumeID         string      `json:"resumeId"`
	JobDescriptionID string      `json:"jobDescriptionId"`
	Questions        QuestionSet `json:"questions"`
	CreatedAt        time.Time   `json:"createdAt"`
}
