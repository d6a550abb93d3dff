package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"turfbook/pkg/model"
)

type TurfClient struct {
	httpClient *HttpClient
}

func NewTurfClient(baseUrl string) *TurfClient {
	return &TurfClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *TurfClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/turfs", body)
}

func (c *TurfClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/turfs?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *TurfClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/turfs/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *TurfClient) GetByOwner(ownerID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/turfs/owner/%s?limit=%d&offset=%d", url.PathEscape(ownerID), limit, offset)
	return c.httpClient.GET(path)
}

func (c *TurfClient) Search(location string, sport string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if location != "" {
		q.Set("location", location)
	}
	if sport != "" {
		q.Set("sport", sport)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/turfs/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *TurfClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/turfs/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *TurfClient) Delete(id string) (*Response, error) {
	path := "/api/v1/turfs/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *TurfClient) DecodeTurf(resp *Response) (*model.Turf, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode turf wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var turf model.Turf
	if err := json.Unmarshal(wrapper.Data, &turf); err != nil {
		return nil, fmt.Errorf("could not decode turf json:\n%+v\n%s", resp.ToString(), err)
	}

	return &turf, nil
}

func (c *TurfClient) DecodeTurfs(resp *Response) ([]*model.Turf, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var turfs []*model.Turf
	if err := json.Unmarshal(wrapper.Data, &turfs); err != nil {
		return nil, nil, fmt.Errorf("could not decode turf list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return turfs, metadata, nil
}
