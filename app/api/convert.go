package api

import (
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

func Business(b models.Business) dto.Business {
	return dto.Business{
		ID:             b.ID,
		OwnerID:        b.OwnerID,
		Name:           b.Name,
		Type:           b.Type,
		ActivitySector: b.ActivitySector,
		Description:    b.Description,
		Address:        b.Address,
		Phone:          b.Phone,
		LogoURL:        b.LogoURL,
		CoverImageURL:  b.CoverImageURL,
		IsVerified:     b.IsVerified,
		Rating:         b.Rating,
		Tags:           []string(b.Tags),
		CreatedAt:      b.CreatedAt,
	}
}

func Variant(v models.Variant, p *models.Product) dto.Variant {
	return dto.Variant{
		ID:            v.ID,
		ProductID:     v.ProductID,
		Name:          v.Name,
		SKU:           v.SKU,
		Price:         v.EffectivePrice(p),
		Currency:      v.Currency,
		StockQuantity: v.StockQuantity,
		ImageURL:      v.ImageURL,
	}
}

func Product(p models.Product) dto.Product {
	variants := make([]dto.Variant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = Variant(v, &p)
	}

	out := dto.Product{
		ID:            p.ID,
		BusinessID:    p.BusinessID,
		Name:          p.Name,
		Description:   p.Description,
		AverageRating: p.AverageRating,
		RatingCount:   p.RatingCount,
		Variants:      variants,
		CreatedAt:     p.CreatedAt,
	}
	if p.Category != nil {
		out.Category = &dto.Category{Code: p.Category.Code, Name: p.Category.Name}
	}
	return out
}

func Table(t models.Table) dto.Table {
	return dto.Table{
		ID:          t.ID,
		BusinessID:  t.BusinessID,
		Name:        t.Name,
		Capacity:    t.Capacity,
		IsAvailable: t.IsAvailable,
		Location:    t.Location,
	}
}

func Menu(m models.Menu) dto.Menu {
	items := make([]dto.MenuItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = dto.MenuItem{
			ID:        it.ID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		}
		if v := it.Variant; v != nil {
			items[i].ProductID = v.ProductID
			items[i].UnitPrice = v.EffectivePrice(v.Product)
			items[i].Currency = v.Currency
			items[i].Stock = v.StockQuantity
			items[i].ProductName = v.Name
			if v.Product != nil {
				items[i].ProductName = v.Product.Name
			}
		}
	}
	return dto.Menu{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		IsActive:    m.IsActive,
		Items:       items,
	}
}

func InventoryItem(it models.InventoryItem) dto.InventoryItem {
	out := dto.InventoryItem{
		ID:             it.ID,
		BusinessID:     it.BusinessID,
		ProductID:      it.ProductID,
		VariantID:      it.VariantID,
		SKU:            it.SKU,
		Quantity:       it.Quantity,
		LotCount:       it.LotCount,
		Price:          it.Price,
		ExpirationDate: it.ExpirationDate,
		WrittenOff:     it.WrittenOff,
	}
	if it.Variant != nil && it.Variant.Product != nil {
		out.ProductName = it.Variant.Product.Name
	}
	return out
}

func Order(o models.Order) dto.Order {
	lines := make([]dto.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = dto.OrderLine{
			ID:          l.ID,
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return dto.Order{
		ID:               o.ID,
		BuyerID:          o.BuyerID,
		BusinessID:       o.BusinessID,
		Status:           o.Status,
		PaymentMethod:    o.PaymentMethod,
		PaymentReference: o.PaymentReference,
		TotalAmount:      o.TotalAmount,
		Currency:         o.Currency,
		DeliveryAddress:  o.DeliveryAddress,
		Note:             o.Note,
		Lines:            lines,
		CreatedAt:        o.CreatedAt,
	}
}

func Wallet(w models.Wallet) dto.Wallet {
	return dto.Wallet{ID: w.ID, UserID: w.UserID, Balance: w.Balance, Currency: w.Currency}
}

func WalletTransaction(t models.WalletTransaction) dto.WalletTransaction {
	return dto.WalletTransaction{
		ID:        t.ID,
		Kind:      t.Kind,
		Amount:    t.Amount,
		Reference: t.Reference,
		CreatedAt: t.CreatedAt,
	}
}
