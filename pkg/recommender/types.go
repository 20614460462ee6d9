package recommender

// GroceryItem is the item shape sent to the money-saver and healthy endpoints
type GroceryItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// UpgradeItem is the item shape sent to the restaurant upgrade endpoint
type UpgradeItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	RestaurantID string  `json:"restaurant_id"`
}

// Candidate is a single recommended alternative for a cart item
type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`

	NutritionReason string  `json:"nutrition_reason,omitempty"`
	UpgradeAmount   float64 `json:"upgrade_amount,omitempty"`
	Similarity      float64 `json:"similarity,omitempty"`

	ImageURL     string `json:"image_url,omitempty"`
	ImgURL       string `json:"img_url,omitempty"`
	Image        string `json:"image,omitempty"`
	GCPPublicURL string `json:"gcp_public_url,omitempty"`
	GCPImageURL  string `json:"gcp_image_url,omitempty"`
	GCPBucket    string `json:"gcp_bucket,omitempty"`
	GCPPath      string `json:"gcp_path,omitempty"`
}

// Recommendations maps a cart item id to its candidate list
type Recommendations map[string][]Candidate

type groceryRequest struct {
	Items []GroceryItem `json:"items"`
}

type upgradeRequest struct {
	Items []UpgradeItem `json:"items"`
}

type recommendationResponse struct {
	Recommendations Recommendations `json:"recommendations"`
}
