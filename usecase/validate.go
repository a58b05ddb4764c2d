package usecase

import "main/model"

// ValidateProject checks every required project field and reports one
// message per empty field, in the wording shown to end users. Fields arrive
// already normalized and sanitized, so an empty check is all that is left.
func ValidateProject(project *model.Project) []string {
	var errs []string
	if project.Title == "" {
		errs = append(errs, "You must provide a title.")
	}
	if project.Location == "" {
		errs = append(errs, "You must provide a location.")
	}
	if project.BidSubmissionDeadline == "" {
		errs = append(errs, "You must provide a date.")
	}
	if project.Description == "" {
		errs = append(errs, "You must provide a description.")
	}
	if project.Email == "" {
		errs = append(errs, "You must provide an email.")
	}
	if project.Phone == "" {
		errs = append(errs, "You must provide a phone.")
	}
	return errs
}

// ValidateBid checks the required bid fields. Items and otherDetails are
// optional.
func ValidateBid(bid *model.Bid) []string {
	var errs []string
	if bid.WhatBestDescribesYou == "" {
		errs = append(errs, "Please choose from the options.")
	}
	if bid.YearsOfExperience == "" {
		errs = append(errs, "Years of experience required.")
	}
	if bid.Phone == "" {
		errs = append(errs, "Phone number is required.")
	}
	if bid.Email == "" {
		errs = append(errs, "Email is required.")
	}
	return errs
}
