package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Beats() BeatRepository
	Orders() OrderRepository
	Collaborations() CollaborationRepository
	Subscribers() SubscriberRepository
}
