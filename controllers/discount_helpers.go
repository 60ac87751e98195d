package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"gorm.io/gorm"
)

// discountInput is a normalized, validated discount payload ready to be
// written. Both the create and update entry points produce one of these
// before touching the store, so no invalid request ever reaches a write.
type discountInput struct {
	ProductID  uint
	Percentage float64
	StartDate  time.Time
	EndDate    time.Time
	Active     bool
}

// DiscountRequest is the wire payload for discount create/update calls
type DiscountRequest struct {
	ProductID  uint     `json:"product_id"`
	Percentage *float64 `json:"percentage"`
	StartDate  string   `json:"start_date"` // RFC3339
	EndDate    string   `json:"end_date"`
	Active     *bool    `json:"active"`
}

// parseDiscountRequest parses, skew-normalizes and validates a discount
// payload against the given clock. Normalization runs before validation on
// every create and update call.
func parseDiscountRequest(req DiscountRequest, now time.Time) (*discountInput, *utils.AppError) {
	if req.StartDate == "" || req.EndDate == "" {
		return nil, utils.BadRequestError("start_date and end_date are required", nil)
	}
	start, err1 := time.Parse(time.RFC3339, req.StartDate)
	end, err2 := time.Parse(time.RFC3339, req.EndDate)
	if err1 != nil || err2 != nil {
		return nil, utils.BadRequestError("Invalid date format. Use RFC3339.", nil)
	}

	start, end = utils.NormalizeDiscountWindow(start, end, now)

	if appErr := utils.ValidateDiscountWindow(req.Percentage, start, end); appErr != nil {
		return nil, appErr
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &discountInput{
		ProductID:  req.ProductID,
		Percentage: *req.Percentage,
		StartDate:  start,
		EndDate:    end,
		Active:     active,
	}, nil
}

// findDiscountByProduct loads the discount row for a product with a fresh
// query. Returns nil without error when the product has no discount.
func findDiscountByProduct(db *gorm.DB, productID uint) (*models.ProductDiscount, error) {
	var discount models.ProductDiscount
	err := db.Where("product_id = ?", productID).First(&discount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

// discountExistsForProduct reports whether a product already carries a
// discount row.
func discountExistsForProduct(db *gorm.DB, productID uint) (bool, error) {
	var count int64
	err := db.Model(&models.ProductDiscount{}).Where("product_id = ?", productID).Count(&count).Error
	return count > 0, err
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// upsertDiscountForProduct is the single write path behind both the create
// and the create-or-update semantics: if the product already has a discount
// row its fields are overwritten, otherwise a new row is inserted. The
// discount write and the product back-reference write form one atomic
// unit. A concurrent create that loses the race on the product_id unique
// index is retried once as an update of the surviving row.
func upsertDiscountForProduct(db *gorm.DB, productID uint, in *discountInput) (*models.ProductDiscount, *utils.AppError) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Product not found", err)
		}
		return nil, utils.InternalError("Failed to load product", err)
	}

	discount, err := findDiscountByProduct(db, productID)
	if err != nil {
		return nil, utils.InternalError("Failed to look up existing discount", err)
	}

	if discount != nil {
		utils.LogInfo("Product %d already has discount %d, updating in place", productID, discount.ID)
		applyDiscountInput(discount, in)
		if err := writeDiscountAndLink(db, discount, false); err != nil {
			return nil, utils.InternalError("Failed to update discount", err)
		}
		return reloadDiscount(db, discount.ID)
	}

	discount = &models.ProductDiscount{
		ProductID:  productID,
		Percentage: in.Percentage,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Active:     in.Active,
	}
	err = writeDiscountAndLink(db, discount, true)
	if err == nil {
		return reloadDiscount(db, discount.ID)
	}
	if !isDuplicateKeyError(err) {
		return nil, utils.InternalError("Failed to create discount", err)
	}

	utils.LogInfo("Concurrent discount create for product %d, retrying as update", productID)
	return resolveDiscountCreateRace(db, productID, in)
}

// writeDiscountAndLink persists the discount row and the product
// back-reference in one transaction. The back-reference keeps the link
// visible from the product side even when the association is never loaded.
// Returns the raw store error so callers can detect a lost create race.
func writeDiscountAndLink(db *gorm.DB, discount *models.ProductDiscount, create bool) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var err error
	if create {
		err = tx.Create(discount).Error
	} else {
		err = tx.Save(discount).Error
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&models.Product{}).
		Where("id = ?", discount.ProductID).
		Update("discount_id", discount.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// resolveDiscountCreateRace updates the row that won a concurrent create
// race. The failed insert's transaction is already rolled back by the time
// this runs: on postgres a unique violation aborts the transaction it
// happened in, so the retry must use a fresh one to see the survivor.
func resolveDiscountCreateRace(db *gorm.DB, productID uint, in *discountInput) (*models.ProductDiscount, *utils.AppError) {
	discount, err := findDiscountByProduct(db, productID)
	if err != nil || discount == nil {
		return nil, utils.InternalError("Failed to resolve concurrent discount create", err)
	}

	applyDiscountInput(discount, in)
	if err := writeDiscountAndLink(db, discount, false); err != nil {
		return nil, utils.InternalError("Failed to update discount", err)
	}
	return reloadDiscount(db, discount.ID)
}

// updateDiscount overwrites the mutable fields of an existing discount and
// re-links it when the payload names a different owning product.
func updateDiscount(db *gorm.DB, discountID uint, in *discountInput) (*models.ProductDiscount, *utils.AppError) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, utils.InternalError("Failed to start transaction", tx.Error)
	}

	var discount models.ProductDiscount
	if err := tx.First(&discount, discountID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Discount not found", err)
		}
		return nil, utils.InternalError("Failed to load discount", err)
	}

	if in.ProductID != 0 && in.ProductID != discount.ProductID {
		var target models.Product
		if err := tx.First(&target, in.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, utils.NotFoundError("Product not found", err)
			}
			return nil, utils.InternalError("Failed to load product", err)
		}

		// Clear the old owner's back-reference before moving the link.
		if err := tx.Model(&models.Product{}).
			Where("id = ? AND discount_id = ?", discount.ProductID, discount.ID).
			Update("discount_id", nil).Error; err != nil {
			tx.Rollback()
			return nil, utils.InternalError("Failed to unlink previous product", err)
		}

		discount.ProductID = in.ProductID
		target.DiscountID = &discount.ID
		if err := tx.Save(&target).Error; err != nil {
			tx.Rollback()
			return nil, utils.InternalError("Failed to link discount to product", err)
		}
	}

	applyDiscountInput(&discount, in)
	if err := tx.Save(&discount).Error; err != nil {
		tx.Rollback()
		if isDuplicateKeyError(err) {
			return nil, utils.BadRequestError("Target product already has a discount", err)
		}
		return nil, utils.InternalError("Failed to update discount", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.InternalError("Failed to commit discount update", err)
	}

	return reloadDiscount(db, discount.ID)
}

// loadDiscount fetches a discount by id, distinguishing a missing row
// from a store fault.
func loadDiscount(db *gorm.DB, discountID uint) (*models.ProductDiscount, *utils.AppError) {
	var discount models.ProductDiscount
	if err := db.First(&discount, discountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Discount not found", err)
		}
		return nil, utils.InternalError("Failed to load discount", err)
	}
	return &discount, nil
}

// setDiscountActive flips only the active flag. The window and percentage
// are left exactly as they were.
func setDiscountActive(db *gorm.DB, discountID uint, active bool) (*models.ProductDiscount, *utils.AppError) {
	discount, appErr := loadDiscount(db, discountID)
	if appErr != nil {
		return nil, appErr
	}

	discount.Active = active
	if err := db.Save(discount).Error; err != nil {
		return nil, utils.InternalError("Failed to update discount", err)
	}

	return reloadDiscount(db, discount.ID)
}

// deleteDiscount breaks the product link and removes the discount row in
// one transaction, so neither side is ever left dangling.
func deleteDiscount(db *gorm.DB, discountID uint) *utils.AppError {
	tx := db.Begin()
	if tx.Error != nil {
		return utils.InternalError("Failed to start transaction", tx.Error)
	}

	var discount models.ProductDiscount
	if err := tx.First(&discount, discountID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("Discount not found", err)
		}
		return utils.InternalError("Failed to load discount", err)
	}

	if discount.ProductID != 0 {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", discount.ProductID).
			Update("discount_id", nil).Error; err != nil {
			tx.Rollback()
			return utils.InternalError("Failed to unlink product", err)
		}
		utils.LogDebug("Cleared discount back-reference on product %d", discount.ProductID)
	}

	if err := tx.Delete(&discount).Error; err != nil {
		tx.Rollback()
		return utils.InternalError("Failed to delete discount", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.InternalError("Failed to commit discount deletion", err)
	}

	utils.LogInfo("Discount %d deleted", discountID)
	return nil
}

// reloadDiscount re-reads the row after commit so callers always see the
// durable state, never a stale in-memory copy.
func reloadDiscount(db *gorm.DB, discountID uint) (*models.ProductDiscount, *utils.AppError) {
	var discount models.ProductDiscount
	if err := db.First(&discount, discountID).Error; err != nil {
		return nil, utils.InternalError("Failed to reload discount", err)
	}
	return &discount, nil
}

func applyDiscountInput(d *models.ProductDiscount, in *discountInput) {
	d.Percentage = in.Percentage
	d.StartDate = in.StartDate
	d.EndDate = in.EndDate
	d.Active = in.Active
}

// assertProductOwner verifies that the caller is the seller who owns the
// product. Read-only; called before any discount mutation.
func assertProductOwner(db *gorm.DB, productID uint, callerEmail string) *utils.AppError {
	var product models.Product
	if err := db.Preload("Seller").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("Product not found", err)
		}
		return utils.InternalError("Failed to load product", err)
	}

	if product.SellerID == 0 || product.Seller.Email == "" {
		utils.LogError("Product %d has no seller assigned", productID)
		return utils.BadRequestError("Product has no seller assigned", nil)
	}

	if product.Seller.Email != callerEmail {
		utils.LogError("User %s attempted to manage discounts for product %d owned by %s",
			callerEmail, productID, product.Seller.Email)
		return utils.BadRequestError("You do not have permission to manage discounts for this product", nil)
	}

	return nil
}

// assertDiscountOwner resolves the discount's owning product and applies
// the same seller check. Returns the discount so callers skip a re-read.
func assertDiscountOwner(db *gorm.DB, discountID uint, callerEmail string) (*models.ProductDiscount, *utils.AppError) {
	discount, appErr := loadDiscount(db, discountID)
	if appErr != nil {
		return nil, appErr
	}

	if discount.ProductID == 0 {
		return nil, utils.BadRequestError("Discount has no associated product", nil)
	}

	if appErr := assertProductOwner(db, discount.ProductID, callerEmail); appErr != nil {
		return nil, appErr
	}

	return discount, nil
}
