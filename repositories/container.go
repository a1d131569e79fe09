package repositories

//go:generate mockgen -destination=mock_repositories/mock_repositories.go -package=mock_repositories github.com/skillbridge/marketplace-go/repositories ProjectRepo,BidRepo,MessageRepo

type Repos struct {
	Project ProjectRepo
	Bid     BidRepo
	Message MessageRepo
}

func New() *Repos {
	return &Repos{
		Project: &DBProjectRepo{},
		Bid:     &DBBidRepo{},
		Message: &DBMessageRepo{},
	}
}
