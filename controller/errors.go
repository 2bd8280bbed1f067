package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrVerifyRoom = errors.New("failed to verify room")
	ErrStaffLogin = errors.New("failed to login")

	ErrChatTurn    = errors.New("error while running chat turn")
	ErrExecuteTool = errors.New("failed to execute tool")

	ErrGetSessionMessages = errors.New("failed to get session messages")

	ErrListRequests      = errors.New("failed to list service requests")
	ErrTransitionRequest = errors.New("failed to transition service request")

	ErrCreateItineraryItem = errors.New("failed to create itinerary item")
	ErrListItineraryItems  = errors.New("failed to list itinerary items")
	ErrUpdateItineraryItem = errors.New("failed to update itinerary item")
	ErrDeleteItineraryItem = errors.New("failed to delete itinerary item")
)
