package cart

import "fmt"

// Subtotal is the sum of current prices times quantities
func (s *Session) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *Session) subtotalLocked() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// OriginalTotal prices every line at its pre-replacement original where
// the ledger has one, falling back to the current price.
func (s *Session) OriginalTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.originalTotalLocked()
}

func (s *Session) originalTotalLocked() float64 {
	total := 0.0
	for id, item := range s.items {
		price := item.Price
		if original, ok := s.ledger[id]; ok {
			price = original
		}
		total += price * float64(item.Quantity)
	}
	return total
}

// Savings is the accumulated price difference from replacements
func (s *Session) Savings() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savings
}

// GrandTotal is the amount actually payable for the cart. With savings
// on the books it is the original total minus the savings accumulator
// (the accumulator is authoritative under chained replacements);
// otherwise it is simply the subtotal.
func (s *Session) GrandTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.savings > 0 {
		return s.originalTotalLocked() - s.savings
	}
	return s.subtotalLocked()
}

// FormatPrice renders an amount as a euro string, e.g. "€12.50"
func FormatPrice(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}
