package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"turfbook/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *BookingClient) Reserve(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings", body)
}

func (c *BookingClient) ReserveRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/bookings", rawBody)
}

func (c *BookingClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *BookingClient) Reschedule(id string, body any) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *BookingClient) Cancel(id string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/cancel"
	return c.httpClient.POST(path, struct{}{})
}

func (c *BookingClient) GetByUser(userID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings/user/%s?limit=%d&offset=%d", url.PathEscape(userID), limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) GetUpcomingByUser(userID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings/user/%s/upcoming?limit=%d&offset=%d", url.PathEscape(userID), limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) GetByTurf(turfID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings/turf/%s?limit=%d&offset=%d", url.PathEscape(turfID), limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) GetUpcomingByTurf(turfID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings/turf/%s/upcoming?limit=%d&offset=%d", url.PathEscape(turfID), limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) Search(search model.BookingSearch, limit int, offset int64) (*Response, error) {
	q := url.Values{}

	if search.UserID != "" {
		q.Set("user_id", search.UserID)
	}
	if search.TurfID != "" {
		q.Set("turf_id", search.TurfID)
	}
	if search.Status != "" {
		q.Set("status", string(search.Status))
	}
	if search.FromDate != "" {
		q.Set("from_date", search.FromDate)
	}
	if search.ToDate != "" {
		q.Set("to_date", search.ToDate)
	}

	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/bookings/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *BookingClient) GetSlots(turfID string, date string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	path := "/api/v1/turfs/id/" + url.PathEscape(turfID) + "/slots?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *BookingClient) CheckAvailability(turfID string, date string, start string, end string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("start_time", start)
	q.Set("end_time", end)
	path := "/api/v1/turfs/id/" + url.PathEscape(turfID) + "/availability?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json:\n%+v\n%s", resp.ToString(), err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, nil, fmt.Errorf("could not decode booking list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return bookings, metadata, nil
}
