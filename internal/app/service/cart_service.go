package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avirtanen/noshcart-backend/internal/app/cart"
	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/avirtanen/noshcart-backend/pkg/recommender"
)

// RecommenderClient is the slice of the recommendation service the cart
// service needs. *recommender.Client satisfies it.
type RecommenderClient interface {
	MoneySaver(ctx context.Context, items []recommender.GroceryItem) (recommender.Recommendations, error)
	Healthy(ctx context.Context, items []recommender.GroceryItem) (recommender.Recommendations, error)
	RestaurantUpgrades(ctx context.Context, items []recommender.UpgradeItem) (recommender.Recommendations, error)
}

// RecommendationView pairs an item's candidate list with its cursor
type RecommendationView struct {
	Candidates []cart.Candidate `json:"candidates"`
	Cursor     int              `json:"cursor"`
	Current    *cart.Candidate  `json:"current,omitempty"`
}

// CartView is the full cart state returned to the client
type CartView struct {
	SessionID       string                        `json:"session_id"`
	Items           []cart.LineItem               `json:"items"`
	ItemCount       int                           `json:"item_count"`
	Subtotal        float64                       `json:"subtotal"`
	OriginalTotal   float64                       `json:"original_total"`
	Savings         float64                       `json:"savings"`
	GrandTotal      float64                       `json:"grand_total"`
	DisplayTotal    string                        `json:"display_total"`
	Mode            cart.Mode                     `json:"optimization_mode,omitempty"`
	State           cart.State                    `json:"optimization_state"`
	Recommendations map[string]RecommendationView `json:"recommendations,omitempty"`
}

type CartService interface {
	AddGroceryItem(sess *cart.Session, groceryID uint) error
	AddMenuItem(sess *cart.Session, menuItemID uint) error
	RemoveItem(sess *cart.Session, itemID string)
	ReplaceItem(sess *cart.Session, itemID string) error
	ClearCart(sess *cart.Session)
	Optimize(sess *cart.Session, mode cart.Mode) error
	Navigate(sess *cart.Session, itemID, direction string) (int, error)
	View(sess *cart.Session) CartView
}

type cartService struct {
	groceries   repository.GroceryRepository
	menu        repository.MenuRepository
	recommender RecommenderClient
}

func NewCartService(
	groceries repository.GroceryRepository,
	menu repository.MenuRepository,
	rec RecommenderClient,
) CartService {
	return &cartService{
		groceries:   groceries,
		menu:        menu,
		recommender: rec,
	}
}

// Cart item ids are namespaced per catalog so a grocery product and a
// menu item with the same numeric id cannot collide. Recommendation
// candidates keep the id the recommendation service assigned them.
func groceryItemID(id uint) string {
	return fmt.Sprintf("g:%d", id)
}

func menuItemID(id uint) string {
	return fmt.Sprintf("m:%d", id)
}

func (s *cartService) AddGroceryItem(sess *cart.Session, groceryID uint) error {
	product, err := s.groceries.FindByID(groceryID)
	if err != nil {
		return err
	}

	sess.Add(cart.Product{
		ID:          groceryItemID(product.ID),
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Description: product.Description,
		ImageURL:    product.ImageFields.Resolve(strconv.Itoa(int(product.ID)), product.Name),
	})

	logger.Debug("Grocery item added to cart", map[string]interface{}{
		"session_id": sess.ID(),
		"grocery_id": groceryID,
	})
	return nil
}

func (s *cartService) AddMenuItem(sess *cart.Session, id uint) error {
	item, err := s.menu.FindByID(id)
	if err != nil {
		return err
	}

	sess.Add(cart.Product{
		ID:           menuItemID(item.ID),
		Name:         item.Name,
		Price:        item.Price,
		Description:  item.Description,
		RestaurantID: strconv.Itoa(int(item.RestaurantID)),
		ImageURL:     item.ImageFields.Resolve(strconv.Itoa(int(item.ID)), item.Name),
	})

	logger.Debug("Menu item added to cart", map[string]interface{}{
		"session_id":   sess.ID(),
		"menu_item_id": id,
	})
	return nil
}

func (s *cartService) RemoveItem(sess *cart.Session, itemID string) {
	sess.Remove(itemID)
}

// ReplaceItem swaps a cart line for the candidate its cursor points at
func (s *cartService) ReplaceItem(sess *cart.Session, itemID string) error {
	candidate, ok := sess.CurrentCandidate(itemID)
	if !ok {
		return cart.ErrNoRecommendations
	}

	if err := sess.Replace(itemID, candidate.Product); err != nil {
		return err
	}

	logger.Info("Cart item replaced", map[string]interface{}{
		"session_id": sess.ID(),
		"old_id":     itemID,
		"new_id":     candidate.ID,
		"savings":    sess.Savings(),
	})
	return nil
}

func (s *cartService) ClearCart(sess *cart.Session) {
	sess.Clear()
}

// Optimize kicks off a recommendation fetch for the session. Validation
// happens synchronously; the network round trip runs in a goroutine so
// cart mutation is never blocked, and results merge back only for items
// that still exist unchanged.
func (s *cartService) Optimize(sess *cart.Session, mode cart.Mode) error {
	switch mode {
	case cart.ModeHealthy:
		if !sess.HasGroceryItems() {
			return cart.ErrNoGroceryItems
		}
	case cart.ModeMoney:
		if sess.ItemCount() == 0 {
			return cart.ErrEmptyCart
		}
		// money mode compares against the first price each item was
		// seen at, so the ledger is stocked before anything changes
		sess.SnapshotOriginalPrices()
	default:
		return cart.ErrInvalidOptimizeMode
	}

	if err := sess.BeginOptimization(mode); err != nil {
		return err
	}

	snapshot := sess.GenerationSnapshot()
	items := sess.Items()

	go s.fetchRecommendations(sess, mode, snapshot, items)
	return nil
}

func (s *cartService) fetchRecommendations(sess *cart.Session, mode cart.Mode, snapshot map[string]uint64, items []cart.LineItem) {
	ctx := context.Background()

	var groceries []recommender.GroceryItem
	var upgrades []recommender.UpgradeItem
	for _, item := range items {
		if item.IsGrocery() {
			groceries = append(groceries, recommender.GroceryItem{
				ID:          item.ID,
				Name:        item.Name,
				Category:    item.Category,
				Price:       item.Price,
				Description: item.Description,
			})
		} else {
			upgrades = append(upgrades, recommender.UpgradeItem{
				ID:           item.ID,
				Name:         item.Name,
				Price:        item.Price,
				RestaurantID: item.RestaurantID,
			})
		}
	}

	// each endpoint merges on its own so one failing fetch cannot take
	// down the results of the other
	attempted, succeeded, keys := 0, 0, 0

	if mode == cart.ModeHealthy {
		attempted++
		if recs, err := s.recommender.Healthy(ctx, groceries); err != nil {
			s.logFetchError(sess, mode, err)
		} else {
			succeeded++
			keys += s.mergeFetch(sess, snapshot, recs)
		}
	} else {
		if len(upgrades) > 0 {
			attempted++
			if recs, err := s.recommender.RestaurantUpgrades(ctx, upgrades); err != nil {
				s.logFetchError(sess, mode, err)
			} else {
				succeeded++
				keys += s.mergeFetch(sess, snapshot, recs)
			}
		}
		if len(groceries) > 0 {
			attempted++
			if recs, err := s.recommender.MoneySaver(ctx, groceries); err != nil {
				s.logFetchError(sess, mode, err)
			} else {
				succeeded++
				keys += s.mergeFetch(sess, snapshot, recs)
			}
		}
	}

	if attempted > 0 && succeeded == 0 {
		sess.FinishOptimization(false)
		return
	}
	sess.FinishOptimization(true)

	logger.Info("Recommendations merged", map[string]interface{}{
		"session_id": sess.ID(),
		"mode":       mode,
		"keys":       keys,
	})
}

// mergeFetch converts one endpoint's response and folds it into the
// session, returning the number of merged keys.
func (s *cartService) mergeFetch(sess *cart.Session, snapshot map[string]uint64, recs recommender.Recommendations) int {
	converted := make(map[string][]cart.Candidate, len(recs))
	for id, candidates := range recs {
		list := make([]cart.Candidate, 0, len(candidates))
		for _, c := range candidates {
			list = append(list, toCartCandidate(c))
		}
		converted[id] = list
	}

	sess.MergeRecommendations(snapshot, converted)
	return len(converted)
}

func (s *cartService) logFetchError(sess *cart.Session, mode cart.Mode, err error) {
	logger.Error("Recommendation fetch failed", err, map[string]interface{}{
		"session_id": sess.ID(),
		"mode":       mode,
	})
}

func toCartCandidate(c recommender.Candidate) cart.Candidate {
	fields := model.ImageFields{
		ImageURL:     c.ImageURL,
		ImgURL:       c.ImgURL,
		Image:        c.Image,
		GCPPublicURL: c.GCPPublicURL,
		GCPImageURL:  c.GCPImageURL,
		GCPBucket:    c.GCPBucket,
		GCPPath:      c.GCPPath,
	}
	return cart.Candidate{
		Product: cart.Product{
			ID:          c.ID,
			Name:        c.Name,
			Category:    c.Category,
			Price:       c.Price,
			Description: c.Description,
			ImageURL:    fields.Resolve(c.ID, c.Name),
		},
		NutritionReason: c.NutritionReason,
		UpgradeAmount:   c.UpgradeAmount,
		Similarity:      c.Similarity,
	}
}

func (s *cartService) Navigate(sess *cart.Session, itemID, direction string) (int, error) {
	return sess.Navigate(itemID, direction)
}

func (s *cartService) View(sess *cart.Session) CartView {
	recs, cursors := sess.Recommendations()

	views := make(map[string]RecommendationView, len(recs))
	for id, candidates := range recs {
		view := RecommendationView{
			Candidates: candidates,
			Cursor:     cursors[id],
		}
		if len(candidates) > 0 {
			current := candidates[view.Cursor]
			view.Current = &current
		}
		views[id] = view
	}

	grandTotal := sess.GrandTotal()
	return CartView{
		SessionID:       sess.ID(),
		Items:           sess.Items(),
		ItemCount:       sess.ItemCount(),
		Subtotal:        sess.Subtotal(),
		OriginalTotal:   sess.OriginalTotal(),
		Savings:         sess.Savings(),
		GrandTotal:      grandTotal,
		DisplayTotal:    cart.FormatPrice(grandTotal),
		Mode:            sess.Mode(),
		State:           sess.State(),
		Recommendations: views,
	}
}
