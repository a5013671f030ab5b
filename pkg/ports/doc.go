// Package ports defines the interfaces between the itinerary engine core
// and its external collaborators: the route optimizer, the currency
// conversion service, the trip persistence service, the agent command
// translator and the place lookup services.
//
// The engine only ever sees these interfaces; adapters under
// internal/adapters provide the HTTP, Redis and in-memory implementations.
package ports
