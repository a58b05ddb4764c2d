package dto

import (
	"strings"

	"main/model"
)

// Free-text fields are declared as any on purpose: a client that sends a
// number or null where a string belongs gets the value coerced to "" by the
// service layer instead of a binding rejection.
type ProjectInput struct {
	Title                 any `json:"title"`
	Location              any `json:"location"`
	BidSubmissionDeadline any `json:"bidSubmissionDeadline"`
	Description           any `json:"description"`
	Email                 any `json:"email"`
	Phone                 any `json:"phone"`
}

type BidItemInput struct {
	Description  any `json:"description"`
	Quantity     any `json:"quantity"`
	PricePerItem any `json:"price_per_item"`
}

type BidInput struct {
	ProjectID            string         `json:"projectId"`
	BidID                string         `json:"bidId,omitempty"`
	WhatBestDescribesYou any            `json:"whatBestDescribesYou"`
	YearsOfExperience    any            `json:"yearsOfExperience"`
	Items                []BidItemInput `json:"items,omitempty"`
	OtherDetails         any            `json:"otherDetails"`
	Phone                any            `json:"phone"`
	Email                any            `json:"email"`
}

type BidRef struct {
	ProjectID string `json:"projectId"`
	BidID     string `json:"bidId"`
}

type SearchInput struct {
	SearchTerm any `json:"searchTerm"`
}

// SingleBidView pairs a bid with its parent project's title, the shape the
// bid detail page renders.
type SingleBidView struct {
	ProjectTitle string    `json:"projectTitle"`
	Bid          model.Bid `json:"bid"`
	ItemsTotal   float64   `json:"itemsTotal"`
}

// FeedItem decorates a project view with the short title and description
// previews the feed renders.
type FeedItem struct {
	model.ProjectView
	TitlePreview       string `json:"titlePreview"`
	DescriptionPreview string `json:"descriptionPreview"`
}

// FeedItems attaches previews to every view in feed order.
func FeedItems(views []model.ProjectView) []FeedItem {
	items := make([]FeedItem, 0, len(views))
	for _, view := range views {
		items = append(items, FeedItem{
			ProjectView:        view,
			TitlePreview:       Preview(view.Title),
			DescriptionPreview: Preview(view.Description),
		})
	}
	return items
}

// Preview shortens a title or description to its first five words, adding an
// ellipsis only when something was cut off.
func Preview(s string) string {
	words := strings.Fields(s)
	if len(words) <= 5 {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:5], " ") + "..."
}

// BidItemsTotal sums quantity * price_per_item across a bid's items.
func BidItemsTotal(items []model.BidItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Quantity * item.PricePerItem
	}
	return total
}
