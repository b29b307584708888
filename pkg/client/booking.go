package client

import (
	"fmt"
	"net/url"
	"time"

	"aeroclub/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

// AsMember returns a client sending memberID on every request.
func (c *BookingClient) AsMember(memberID string) *BookingClient {
	hc := *c.httpClient
	hc.MemberID = memberID
	return &BookingClient{httpClient: &hc}
}

func (c *BookingClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}

func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings", body)
}

func (c *BookingClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/bookings", rawBody)
}

// List passes filter as query parameters; empty values are omitted.
func (c *BookingClient) List(filter map[string]string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	for k, v := range filter {
		if v != "" {
			q.Set(k, v)
		}
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET("/api/v1/bookings?" + q.Encode())
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/bookings/id/" + url.PathEscape(id))
}

func (c *BookingClient) Update(id string, body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/bookings/id/"+url.PathEscape(id), body)
}

func (c *BookingClient) Delete(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/bookings/id/" + url.PathEscape(id))
}

// Overlap asks whether [start, end] collides with a booking of resourceID,
// ignoring excludeID when set.
func (c *BookingClient) Overlap(resourceID string, start, end time.Time, excludeID string) (*Response, error) {
	q := url.Values{}
	q.Set("resource_id", resourceID)
	q.Set("start_time", start.UTC().Format(time.RFC3339))
	q.Set("end_time", end.UTC().Format(time.RFC3339))
	if excludeID != "" {
		q.Set("exclude_id", excludeID)
	}
	return c.httpClient.GET("/api/v1/bookings/overlap?" + q.Encode())
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	return DecodeData[model.Booking](resp)
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]model.Booking, *Metadata, error) {
	return DecodePage[model.Booking](resp)
}

func (c *BookingClient) DecodeOverlap(resp *Response) (bool, error) {
	result, err := DecodeData[struct {
		Overlapping bool `json:"overlapping"`
	}](resp)
	if err != nil {
		return false, err
	}
	return result.Overlapping, nil
}
