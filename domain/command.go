package domain

type CreateQuestionCommand struct {
	UserName string
	Message  string
}

type AddAnswerCommand struct {
	QuestionID int64
	UserName   string
	Message    string
}
