package client

import (
	"fmt"
	"net/url"
	"time"

	"aeroclub/pkg/model"
)

// MembersClient talks to the members service: aircraft, logbook and profile.
type MembersClient struct {
	httpClient *HttpClient
}

func NewMembersClient(baseUrl string) *MembersClient {
	return &MembersClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *MembersClient) AsMember(memberID string) *MembersClient {
	hc := *c.httpClient
	hc.MemberID = memberID
	return &MembersClient{httpClient: &hc}
}

func (c *MembersClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}

func (c *MembersClient) CreateAircraft(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/aircraft", body)
}

func (c *MembersClient) ListAircraft(activeOnly bool, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/v1/aircraft?active=%t&limit=%d&offset=%d", activeOnly, limit, offset))
}

func (c *MembersClient) UpdateAircraft(id string, body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/aircraft/id/"+url.PathEscape(id), body)
}

func (c *MembersClient) DeleteAircraft(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/aircraft/id/" + url.PathEscape(id))
}

func (c *MembersClient) CreateLogEntry(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/logbook", body)
}

func (c *MembersClient) ListLogEntries(limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/v1/logbook?limit=%d&offset=%d", limit, offset))
}

func (c *MembersClient) GetLogEntry(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/logbook/id/" + url.PathEscape(id))
}

func (c *MembersClient) DeleteLogEntry(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/logbook/id/" + url.PathEscape(id))
}

func (c *MembersClient) Totals() (*Response, error) {
	return c.httpClient.GET("/api/v1/logbook/totals")
}

func (c *MembersClient) GetProfile() (*Response, error) {
	return c.httpClient.GET("/api/v1/profile")
}

func (c *MembersClient) UpdateProfile(body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/profile", body)
}

func (c *MembersClient) DecodeAircraft(resp *Response) (*model.Aircraft, error) {
	return DecodeData[model.Aircraft](resp)
}

func (c *MembersClient) DecodeLogEntry(resp *Response) (*model.LogEntry, error) {
	return DecodeData[model.LogEntry](resp)
}

func (c *MembersClient) DecodeProfile(resp *Response) (*model.Profile, error) {
	return DecodeData[model.Profile](resp)
}
