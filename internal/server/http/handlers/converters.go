package handlers

import (
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/server/http/dto"
	"github.com/polkiloo/beatstore/internal/usecase"
)

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
	}
}

func toBeatResponse(b model.Beat) dto.BeatResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.BeatResponse{
		ID:         b.ID,
		Title:      b.Title,
		Artist:     b.Artist,
		BPM:        b.BPM,
		Key:        b.Key,
		Genre:      b.Genre,
		Price:      b.Price.Float(),
		AudioURL:   b.AudioURL,
		ArtworkURL: b.ArtworkURL,
		Tags:       tags,
		Licenses: dto.LicensesResponse{
			Basic:     b.Licenses.Basic,
			Premium:   b.Licenses.Premium,
			Exclusive: b.Licenses.Exclusive,
		},
		Featured:  b.Featured,
		CreatedAt: b.CreatedAt,
	}
}

func toBeatResponses(beats []model.Beat) []dto.BeatResponse {
	response := make([]dto.BeatResponse, 0, len(beats))
	for _, b := range beats {
		response = append(response, toBeatResponse(b))
	}
	return response
}

func toCartLines(lines []dto.CartLine) []usecase.CartLine {
	result := make([]usecase.CartLine, 0, len(lines))
	for _, l := range lines {
		result = append(result, usecase.CartLine{BeatID: l.BeatID, License: model.License(l.License)})
	}
	return result
}

func toQuoteResponse(cart *model.Cart) dto.QuoteResponse {
	items := cart.Items()
	response := dto.QuoteResponse{
		Items:    make([]dto.QuoteItem, 0, len(items)),
		Subtotal: cart.Subtotal().Float(),
		Count:    cart.Len(),
	}
	for _, item := range items {
		response.Items = append(response.Items, dto.QuoteItem{
			BeatID:     item.Beat.ID,
			Title:      item.Beat.Title,
			ArtworkURL: item.Beat.ArtworkURL,
			License:    string(item.License),
			Price:      item.Price.Float(),
		})
	}
	return response
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	response := dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		CustomerEmail: o.CustomerEmail,
		Items:         make([]dto.OrderItemResponse, 0, len(o.Items)),
		Subtotal:      o.Subtotal.Float(),
		Tax:           o.Tax.Float(),
		Total:         o.Total.Float(),
		Status:        string(o.Status),
		DownloadLinks: o.DownloadLinks,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, item := range o.Items {
		response.Items = append(response.Items, dto.OrderItemResponse{
			BeatID:     item.BeatID,
			Title:      item.Title,
			ArtworkURL: item.ArtworkURL,
			License:    string(item.License),
			Price:      item.Price.Float(),
		})
	}
	return response
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toCollaborationResponse(c model.Collaboration) dto.CollaborationResponse {
	return dto.CollaborationResponse{
		ID:            c.ID,
		Title:         c.Title,
		Type:          string(c.Type),
		Description:   c.Description,
		ClientName:    c.ClientName,
		ClientEmail:   c.ClientEmail,
		AssignedTo:    c.AssignedTo,
		Budget:        c.Budget.Float(),
		PaidAmount:    c.PaidAmount.Float(),
		Outstanding:   c.Outstanding().Float(),
		PaymentStatus: string(c.PaymentStatus),
		Status:        string(c.Status),
		Deadline:      c.Deadline,
		Notes:         c.Notes,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		SignedAt:      c.SignedAt,
		CompletedAt:   c.CompletedAt,
	}
}

func toCollaborationResponses(collabs []model.Collaboration) []dto.CollaborationResponse {
	response := make([]dto.CollaborationResponse, 0, len(collabs))
	for _, c := range collabs {
		response = append(response, toCollaborationResponse(c))
	}
	return response
}

func toCollaborationDraft(req dto.CollaborationRequest) model.CollaborationDraft {
	return model.CollaborationDraft{
		Title:       req.Title,
		Type:        model.CollaborationType(req.Type),
		Description: req.Description,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		AssignedTo:  req.AssignedTo,
		Budget:      model.MoneyFromFloat(req.Budget),
		Status:      model.CollaborationStatus(req.Status),
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	}
}

func toCollaborationPatch(req dto.CollaborationPatchRequest) model.CollaborationPatch {
	patch := model.CollaborationPatch{
		Title:       req.Title,
		Description: req.Description,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		AssignedTo:  req.AssignedTo,
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	}
	if req.Type != nil {
		t := model.CollaborationType(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		s := model.CollaborationStatus(*req.Status)
		patch.Status = &s
	}
	if req.Budget != nil {
		b := model.MoneyFromFloat(*req.Budget)
		patch.Budget = &b
	}
	return patch
}

func toOrderStatsResponse(s model.OrderStats) dto.OrderStatsResponse {
	return dto.OrderStatsResponse{
		TotalRevenue:      s.TotalRevenue.Float(),
		TotalOrders:       s.TotalOrders,
		PendingOrders:     s.PendingOrders,
		CompletedOrders:   s.CompletedOrders,
		AverageOrderValue: s.AverageOrderValue.Float(),
	}
}

func toCollaborationStatsResponse(s model.CollaborationStats) dto.CollaborationStatsResponse {
	return dto.CollaborationStatsResponse{
		Total:          s.Total,
		Active:         s.Active,
		Completed:      s.Completed,
		TotalRevenue:   s.TotalRevenue.Float(),
		PendingRevenue: s.PendingRevenue.Float(),
	}
}

func toDashboardResponse(s *model.DashboardStats) dto.DashboardResponse {
	return dto.DashboardResponse{
		Orders:         toOrderStatsResponse(s.Orders),
		Collaborations: toCollaborationStatsResponse(s.Collaborations),
		Catalog: dto.CatalogStatsResponse{
			TotalBeats:    s.Catalog.TotalBeats,
			FeaturedBeats: s.Catalog.FeaturedBeats,
			Genres:        s.Catalog.Genres,
		},
	}
}
