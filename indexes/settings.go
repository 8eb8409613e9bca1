package indexes

import (
	"context"
	"fmt"

	"github.com/kelsos/meili-go/models"
)

// GetSettings returns the full settings object of the index.
func (i *Index) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	endpoint := fmt.Sprintf("/indexes/%s/settings", i.uid)
	if err := i.client.Get(ctx, endpoint, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings enqueues a partial settings update. Only non-nil fields of
// settings are changed on the server.
func (i *Index) UpdateSettings(ctx context.Context, settings *models.Settings) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := fmt.Sprintf("/indexes/%s/settings", i.uid)
	if err := i.client.Patch(ctx, endpoint, settings, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ResetSettings enqueues a reset of every setting to its server default.
func (i *Index) ResetSettings(ctx context.Context) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := fmt.Sprintf("/indexes/%s/settings", i.uid)
	if err := i.client.Delete(ctx, endpoint, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
