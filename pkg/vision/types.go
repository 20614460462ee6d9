package vision

// Assessment recommendation values returned by the damage-detection service.
const (
	RecommendApproveReturn = "approve_return"
	RecommendRejectReturn  = "reject_return"
	RecommendNeedsReview   = "needs_review"
)

// DamageAssessment is the structured verdict for a damage complaint photo
type DamageAssessment struct {
	IsDamaged      bool   `json:"is_damaged"`
	DamageSeverity string `json:"damage_severity"`
	DamageType     string `json:"damage_type"`
	Reasoning      string `json:"reasoning"`
	Recommendation string `json:"recommendation"`
}

type detectionRequest struct {
	Image   string `json:"image"`
	Comment string `json:"comment"`
}

type detectionResponse struct {
	Success    bool              `json:"success"`
	Assessment *DamageAssessment `json:"assessment"`
}

type errorResponse struct {
	Error string `json:"error"`
}
