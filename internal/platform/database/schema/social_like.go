package schema

// SocialLikeTable represents the 'social.userlike' table
type SocialLikeTable struct {
	Table      string
	UserID     string
	TargetID   string
	TargetType string
	CreatedAt  string
}

// SocialLike is the schema definition for social.userlike
var SocialLike = SocialLikeTable{
	Table:      "social.userlike",
	UserID:     "userid",
	TargetID:   "targetid",
	TargetType: "targettype",
	CreatedAt:  "createdat",
}
