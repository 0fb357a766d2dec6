package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"ansxtra/internal/model"
	"ansxtra/internal/store"
)

var ErrApplicationNotFound = errors.New("application not found")

// ApplicationsKey 申请集合整体存在一个 key 下，读全量、改一条、写回全量
const ApplicationsKey = "ansxtra:applications"

// ApplicationRepository 模拟服务端持久化的申请仓储
// 写操作内部用互斥锁串行化，保证读改写对调用方原子
type ApplicationRepository struct {
	kv store.KV
	mu sync.Mutex
}

func NewApplicationRepository(kv store.KV) *ApplicationRepository {
	return &ApplicationRepository{kv: kv}
}

// load 不存在返回空表；损坏的数据按空处理，只记日志
func (r *ApplicationRepository) load(ctx context.Context) ([]model.Application, error) {
	data, err := r.kv.Get(ctx, ApplicationsKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var apps []model.Application
	if err := json.Unmarshal(data, &apps); err != nil {
		log.Printf("application list corrupt, treating as empty: %v", err)
		return nil, nil
	}
	return apps, nil
}

func (r *ApplicationRepository) save(ctx context.Context, apps []model.Application) error {
	data, err := json.Marshal(apps)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, ApplicationsKey, data, 0)
}

func (r *ApplicationRepository) List(ctx context.Context) ([]model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *ApplicationRepository) ListByEmail(ctx context.Context, email string) ([]model.Application, error) {
	apps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Application, 0, len(apps))
	for _, a := range apps {
		if a.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *ApplicationRepository) ListByClub(ctx context.Context, clubID string) ([]model.Application, error) {
	apps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Application, 0, len(apps))
	for _, a := range apps {
		if a.ClubID == clubID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	apps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].ID == id {
			return &apps[i], nil
		}
	}
	return nil, ErrApplicationNotFound
}

// FindByKey 按业务键 (clubId, email) 查找，没有返回 nil
func (r *ApplicationRepository) FindByKey(ctx context.Context, clubID, email string) (*model.Application, error) {
	apps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].ClubID == clubID && apps[i].Email == email {
			return &apps[i], nil
		}
	}
	return nil, nil
}

// Upsert 同 (clubId, email) 的旧记录被整条替换，保证每个社团至多一条申请
func (r *ApplicationRepository) Upsert(ctx context.Context, app model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	apps, err := r.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range apps {
		if apps[i].ClubID == app.ClubID && apps[i].Email == app.Email {
			apps[i] = app
			replaced = true
			break
		}
	}
	if !replaced {
		apps = append(apps, app)
	}
	return r.save(ctx, apps)
}

// UpdateStatus id 不存在时报错，不做静默空操作
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apps, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range apps {
		if apps[i].ID == id {
			now := time.Now()
			apps[i].Status = status
			apps[i].UpdatedAt = &now
			if err := r.save(ctx, apps); err != nil {
				return nil, err
			}
			updated := apps[i]
			return &updated, nil
		}
	}
	return nil, ErrApplicationNotFound
}

// Delete 返回是否真的删掉了一条；id 不存在不算错误
func (r *ApplicationRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apps, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range apps {
		if apps[i].ID == id {
			apps = append(apps[:i], apps[i+1:]...)
			if err := r.save(ctx, apps); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
