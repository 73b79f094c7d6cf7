package domain

var (
	MessageSuccessGetUser          = "success get user"
	MessageSuccessGetSubscriptions = "success get subscriptions"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"

	MessageFailedGetUser          = "failed to get user"
	MessageFailedGetSubscriptions = "failed to get subscriptions"
	MessageFailedToggleSubscribe  = "failed to update subscription"

	ErrUserNotFound = NewNotFoundError("user not found")
)

type (
	UserProfile struct {
		ID           uint   `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Avatar       string `json:"avatar"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	AuthorCard struct {
		UserProfile
		Recipes      []RecipeShort `json:"recipes"`
		RecipesCount int64         `json:"recipes_count"`
	}
)
