package dapps

// LocalDapp is the control plane view of an installed dapp
type LocalDapp struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	IconURL     string `json:"iconUrl"`
}

// Service lists dapps whether or not the middleware was built
type Service struct {
	middleware Middleware
}

func NewService(m Middleware) *Service {
	return &Service{middleware: m}
}

func (t *Service) ListDapps() []LocalDapp {
	if t.middleware == nil {
		return []LocalDapp{}
	}

	endpoints := t.middleware.Endpoints()
	list := make([]LocalDapp, 0, len(endpoints))
	for _, e := range endpoints {
		list = append(list, LocalDapp{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Version:     e.Version,
			Author:      e.Author,
			IconURL:     e.IconURL,
		})
	}

	return list
}
