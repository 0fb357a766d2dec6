package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"ansxtra/internal/model"
	"ansxtra/internal/store"
)

var (
	ErrTokenNotFound     = errors.New("token not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrTokenExtendFailed = errors.New("token extend failed")
	ErrTokenDeleteFailed = errors.New("token delete failed")
)

const (
	SessionPrefix      = "ansxtra:session"
	StudentTokenPrefix = "login:student:token"
	TokenTTL           = 30 * time.Minute
)

// SessionRepository 持久化会话记录和登录 token
type SessionRepository struct {
	kv store.KV
}

func NewSessionRepository(kv store.KV) *SessionRepository {
	return &SessionRepository{kv: kv}
}

func sessionKey(email string) string {
	return fmt.Sprintf("%s:%s", SessionPrefix, email)
}

func tokenKey(studentID string) string {
	return fmt.Sprintf("%s:%s", StudentTokenPrefix, studentID)
}

func (r *SessionRepository) Save(ctx context.Context, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, sessionKey(s.Email), data, 0)
}

// Load 读不到返回 nil；记录损坏按不存在处理并清掉坏数据
func (r *SessionRepository) Load(ctx context.Context, email string) (*model.Session, error) {
	data, err := r.kv.Get(ctx, sessionKey(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("session record for %s corrupt, clearing: %v", email, err)
		_ = r.kv.Delete(ctx, sessionKey(email))
		return nil, nil
	}
	return &s, nil
}

// Clear 幂等：没有会话也算成功
func (r *SessionRepository) Clear(ctx context.Context, email string) error {
	return r.kv.Delete(ctx, sessionKey(email))
}

func (r *SessionRepository) AddToken(ctx context.Context, studentID, token string) error {
	if err := r.kv.Put(ctx, tokenKey(studentID), []byte(token), TokenTTL); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}

func (r *SessionRepository) GetToken(ctx context.Context, studentID string) (string, error) {
	data, err := r.kv.Get(ctx, tokenKey(studentID))
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrStoreUnavailable
	}
	return string(data), nil
}

// ExtendToken 校验通过后续期
func (r *SessionRepository) ExtendToken(ctx context.Context, studentID string) error {
	if err := r.kv.Expire(ctx, tokenKey(studentID), TokenTTL); err != nil {
		return ErrTokenExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteToken(ctx context.Context, studentID string) error {
	if err := r.kv.Delete(ctx, tokenKey(studentID)); err != nil {
		return ErrTokenDeleteFailed
	}
	return nil
}
