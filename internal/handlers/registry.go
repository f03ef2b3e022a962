package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	MemberHandler       *MemberHandler
	TrainerHandler      *TrainerHandler
	ExerciseHandler     *ExerciseHandler
	SubscriptionHandler *SubscriptionHandler
	ProvisionHandler    *ProvisionHandler
}
