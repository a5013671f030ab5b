// Package command defines the dispatchable command kinds of the itinerary
// engine and the typed payload each kind carries.
//
// Commands arrive from two producers with identical shape: direct UI
// handlers, and the agent translation service which turns free text into a
// {command, payload} pair. Payloads are loosely-typed key/value maps at the
// boundary; Decode narrows them into one struct per kind before any handler
// runs.
package command

// Kind identifies one mutation or view transition the dispatcher knows how
// to apply.
type Kind string

const (
	// Trip metadata.
	UpdateTripName  Kind = "update_trip_name"
	UpdateMembers   Kind = "update_members"
	UpdateStartDate Kind = "update_start_date"
	UpdateEndDate   Kind = "update_end_date"

	// Day structure.
	AddNewDay             Kind = "add_new_day"
	AddNewDayAfterCurrent Kind = "add_new_day_after_current"
	AddNewDayAfterIth     Kind = "add_new_day_after_ith"
	DeleteCurrentDay      Kind = "delete_current_day"
	DeleteAllDays         Kind = "delete_all_days"
	SwapDay               Kind = "swap_day"
	DeleteRangeOfDays     Kind = "delete_range_of_days"

	// Destinations.
	AddNewDestination        Kind = "add_new_destination"
	ConfirmAddNewDestination Kind = "confirm_add_new_destination"
	ReplaceDestination       Kind = "replace_destination_in_plan"
	RemoveDestination        Kind = "remove_destination"

	// View state.
	SelectDay       Kind = "select_day"
	ViewAllDays     Kind = "view_all_days"
	ExtendMapView   Kind = "extend_map_view"
	CollapseMapView Kind = "collapse_map_view"
	FindRouteOfPair Kind = "find_route_of_pair_ith"

	// Plan lifecycle.
	DeleteCurrentPlan Kind = "delete_current_plan"

	// Staged queries. Results land in the candidate buffer, not the plan.
	SearchNewDestination  Kind = "search_new_destination"
	ExtractTypeFromPrompt Kind = "extract_type_from_prompt"
	FindPlaceInformation  Kind = "find_information_for_a_place"

	// Bulk build from an agent-produced itinerary.
	CreateItinerary Kind = "create_itinerary"
)

// Known reports whether k is a command kind the dispatcher understands.
// Unknown kinds are logged and ignored, never fatal.
func Known(k Kind) bool {
	_, ok := payloadFactories[k]
	return ok
}
