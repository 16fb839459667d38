package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/lumenshop/storefront/internal/app/domain/user"
	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/pkg/result"
)

// Register creates the auth account, then writes the profile document under
// the new user id.
func (r *repo) Register(ctx context.Context, profile user.Profile, password string) *result.Channel[string] {
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		id, err := r.auth.CreateAccount(ctx, profile.Email, password)
		if err != nil {
			return "", err
		}
		if err := r.docs.Set(ctx, remote.UsersCollection, id, profile); err != nil {
			return "", err
		}
		r.log.WithField("user_id", id).Info("user registered")
		return "user registered successfully", nil
	})
}

func (r *repo) Login(ctx context.Context, email, password string) *result.Channel[string] {
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		id, err := r.auth.SignIn(ctx, email, password)
		if err != nil {
			return "", err
		}
		r.log.WithField("user_id", id).Info("user signed in")
		return "user logged in successfully", nil
	})
}

func (r *repo) GetUser(ctx context.Context, id string) *result.Channel[user.Record] {
	return result.Run(ctx, func(ctx context.Context) (user.Record, error) {
		doc, err := r.docs.Get(ctx, remote.UsersCollection, id)
		if err != nil {
			return user.Record{}, err
		}
		var profile user.Profile
		if err := json.Unmarshal(doc.Data, &profile); err != nil {
			return user.Record{}, fmt.Errorf("decode profile %s: %w", doc.ID, err)
		}
		return user.Record{ID: doc.ID, Profile: profile}, nil
	})
}

func (r *repo) UpdateUser(ctx context.Context, rec user.Record) *result.Channel[string] {
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		fields := map[string]any{
			"firstName":    rec.Profile.FirstName,
			"lastName":     rec.Profile.LastName,
			"email":        rec.Profile.Email,
			"phoneNumber":  rec.Profile.PhoneNumber,
			"address":      rec.Profile.Address,
			"profileImage": rec.Profile.ProfileImage,
		}
		if err := r.docs.Update(ctx, remote.UsersCollection, rec.ID, fields); err != nil {
			return "", err
		}
		return "user data updated successfully", nil
	})
}

// UploadProfileImage stores the image under a per-user path and returns its
// public URL.
func (r *repo) UploadProfileImage(ctx context.Context, filename string, contents io.Reader) *result.Channel[string] {
	uid := r.currentUser()
	if uid == "" {
		return result.Fail[string](errSignInRequired)
	}
	return result.Run(ctx, func(ctx context.Context) (string, error) {
		object := path.Join("profile-images", uid, uuid.NewString()+path.Ext(filename))
		url, err := r.objects.Upload(ctx, object, contents)
		if err != nil {
			return "", err
		}
		return url, nil
	})
}
