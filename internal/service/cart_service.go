package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/abheydecbs/webshop-eksamen/internal/cache"
	"github.com/abheydecbs/webshop-eksamen/internal/cartstore"
	"github.com/abheydecbs/webshop-eksamen/internal/domain"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// CartService owns the durable cart. Reads go through the cache; every
// mutation invalidates it and returns the refreshed authoritative cart,
// which handlers hand back to the client wholesale.
type CartService struct {
	store   cartstore.Store
	cache   cache.CartCache
	catalog repository.ProductRepository
	sfg     singleflight.Group // collapses concurrent cache misses per user
}

func NewCartService(store cartstore.Store, cache cache.CartCache, catalog repository.ProductRepository) *CartService {
	return &CartService{
		store:   store,
		cache:   cache,
		catalog: catalog,
	}
}

// GetCart returns an empty cart, not an error, when the user has none yet.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(fmt.Sprint(userID), func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.store.GetCart(ctx, userID)
		if errGet != nil && errors.Is(errGet, cartstore.ErrCartNotFound) {
			return &domain.Cart{
				UserID:    userID,
				Lines:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddLine validates the product against the catalog and snapshots its name
// and price at add time. Quantity accumulates for a line that already
// exists; the original snapshot wins.
func (s *CartService) AddLine(ctx context.Context, userID int64, productID int64, quantity int) (*domain.Cart, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}

	line := domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	}

	if errAdd := s.store.AddLine(ctx, userID, line); errAdd != nil {
		log.Printf("store add line error: %v \n", errAdd)
		return nil, errAdd
	}

	s.invalidateCache(userID)
	return s.GetCart(ctx, userID)
}

func (s *CartService) SetQuantity(ctx context.Context, userID int64, productID int64, quantity int) (*domain.Cart, error) {
	if errUpdate := s.store.SetLineQuantity(ctx, userID, productID, quantity); errUpdate != nil {
		if !errors.Is(errUpdate, cartstore.ErrLineNotFound) {
			log.Printf("store set quantity error: %v \n", errUpdate)
		}
		return nil, errUpdate
	}

	s.invalidateCache(userID)
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveLine(ctx context.Context, userID int64, productID int64) (*domain.Cart, error) {
	if errRemove := s.store.RemoveLine(ctx, userID, productID); errRemove != nil {
		log.Printf("store remove line error: %v \n", errRemove)
		return nil, errRemove
	}

	s.invalidateCache(userID)
	return s.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	if errDelete := s.store.DeleteCart(ctx, userID); errDelete != nil {
		log.Printf("store delete cart error: %v \n", errDelete)
		return errDelete
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) invalidateCache(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
