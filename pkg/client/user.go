package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"turfbook/pkg/model"
)

type UserClient struct {
	httpClient *HttpClient
}

func NewUserClient(baseUrl string) *UserClient {
	return &UserClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *UserClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/users", body)
}

func (c *UserClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/users?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *UserClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/users/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *UserClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/users/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *UserClient) Delete(id string) (*Response, error) {
	path := "/api/v1/users/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *UserClient) DecodeUser(resp *Response) (*model.User, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode user wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var user model.User
	if err := json.Unmarshal(wrapper.Data, &user); err != nil {
		return nil, fmt.Errorf("could not decode user json:\n%+v\n%s", resp.ToString(), err)
	}

	return &user, nil
}
