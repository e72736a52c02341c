package quiz

type QuizContainer struct {
	Controller *Controller
}

func NewQuizContainer(service Service, recorder Recorder, userName string) *QuizContainer {
	opts := []Option{WithDefaultUser(userName)}
	if recorder != nil {
		opts = append(opts, WithRecorder(recorder))
	}

	return &QuizContainer{
		Controller: NewController(service, opts...),
	}
}
