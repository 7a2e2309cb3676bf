package memory

import (
	"context"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

type Users struct{ ss *Session }

func cloneUser(u models.User) *models.User { return &u }

func (r *Users) usernameTaken(name string, except int64) bool {
	for id, u := range r.ss.s.users {
		if id != except && u.Username == name {
			return true
		}
	}
	return false
}

func (r *Users) Create(ctx context.Context, user *models.User) (*models.User, error) {
	defer r.ss.lock()()

	if r.usernameTaken(user.Username, 0) {
		return nil, common.ErrorDuplicateIdentifier
	}
	user.ID = r.ss.nextID("users")
	put(r.ss, r.ss.s.users, user.ID, *user)
	return user, nil
}

func (r *Users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	defer r.ss.lock()()

	u, ok := r.ss.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer r.ss.lock()()

	found := collect(r.ss.s.users, func(u models.User) bool { return u.Username == username }, cloneUser)
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *Users) List(ctx context.Context) ([]*models.User, error) {
	defer r.ss.lock()()
	return collect(r.ss.s.users, nil, cloneUser), nil
}

// Update never renames the account.
func (r *Users) Update(ctx context.Context, user *models.User) error {
	defer r.ss.lock()()

	cur, ok := r.ss.s.users[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.PasswordHash = user.PasswordHash
	cur.FullName = user.FullName
	cur.Email = user.Email
	cur.Role = user.Role
	cur.IsActive = user.IsActive
	put(r.ss, r.ss.s.users, cur.ID, cur)
	return nil
}

func (r *Users) Delete(ctx context.Context, id int64) (bool, error) {
	defer r.ss.lock()()
	return remove(r.ss, r.ss.s.users, id), nil
}

func (r *Users) Count(ctx context.Context) (int, error) {
	defer r.ss.lock()()
	return len(r.ss.s.users), nil
}

type Locations struct{ ss *Session }

func cloneLocation(l models.Location) *models.Location { return &l }

func (r *Locations) nameTaken(name string, except int64) bool {
	for id, l := range r.ss.s.locations {
		if id != except && l.Name == name {
			return true
		}
	}
	return false
}

func (r *Locations) Create(ctx context.Context, l *models.Location) (*models.Location, error) {
	defer r.ss.lock()()

	if r.nameTaken(l.Name, 0) {
		return nil, common.ErrorDuplicateIdentifier
	}
	l.ID = r.ss.nextID("locations")
	put(r.ss, r.ss.s.locations, l.ID, *l)
	return l, nil
}

func (r *Locations) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	defer r.ss.lock()()

	l, ok := r.ss.s.locations[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneLocation(l), nil
}

func (r *Locations) List(ctx context.Context) ([]*models.Location, error) {
	defer r.ss.lock()()
	return collect(r.ss.s.locations, nil, cloneLocation), nil
}

func (r *Locations) Update(ctx context.Context, l *models.Location) error {
	defer r.ss.lock()()

	cur, ok := r.ss.s.locations[l.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if r.nameTaken(l.Name, l.ID) {
		return common.ErrorDuplicateIdentifier
	}
	cur.Name = l.Name
	cur.Type = l.Type
	cur.Address = l.Address
	cur.Capacity = l.Capacity
	cur.IsActive = l.IsActive
	put(r.ss, r.ss.s.locations, cur.ID, cur)
	return nil
}

func (r *Locations) Delete(ctx context.Context, id int64) (bool, error) {
	defer r.ss.lock()()
	return remove(r.ss, r.ss.s.locations, id), nil
}

type ServerModels struct{ ss *Session }

func cloneModel(m models.ServerModel) *models.ServerModel { return &m }

func (r *ServerModels) nameTaken(name string, except int64) bool {
	for id, m := range r.ss.s.serverModels {
		if id != except && m.Name == name {
			return true
		}
	}
	return false
}

func (r *ServerModels) Create(ctx context.Context, m *models.ServerModel) (*models.ServerModel, error) {
	defer r.ss.lock()()

	if r.nameTaken(m.Name, 0) {
		return nil, common.ErrorDuplicateIdentifier
	}
	m.ID = r.ss.nextID("server_models")
	put(r.ss, r.ss.s.serverModels, m.ID, *m)
	return m, nil
}

func (r *ServerModels) GetByID(ctx context.Context, id int64) (*models.ServerModel, error) {
	defer r.ss.lock()()

	m, ok := r.ss.s.serverModels[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneModel(m), nil
}

func (r *ServerModels) List(ctx context.Context) ([]*models.ServerModel, error) {
	defer r.ss.lock()()
	return collect(r.ss.s.serverModels, nil, cloneModel), nil
}

func (r *ServerModels) Update(ctx context.Context, m *models.ServerModel) error {
	defer r.ss.lock()()

	cur, ok := r.ss.s.serverModels[m.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if r.nameTaken(m.Name, m.ID) {
		return common.ErrorDuplicateIdentifier
	}
	cur.Name = m.Name
	cur.Brand = m.Brand
	cur.Specs = m.Specs
	put(r.ss, r.ss.s.serverModels, cur.ID, cur)
	return nil
}

func (r *ServerModels) Delete(ctx context.Context, id int64) (bool, error) {
	defer r.ss.lock()()
	return remove(r.ss, r.ss.s.serverModels, id), nil
}
