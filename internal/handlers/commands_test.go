package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/handlers"
	"github.com/ammerola/warehouse/test/helpers"
	"github.com/ammerola/warehouse/test/mocks"
)

type commandMocks struct {
	service *mocks.MockInventoryService
	opener  *mocks.MockSnapshotOpener
	store   *mocks.MockInventoryStore
}

func TestCommandHandler(t *testing.T) {
	sess := domain.NewSession("admin")
	unauthorized := fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

	tests := []struct {
		name       string
		run        func(ctx context.Context, h *handlers.CommandHandler) error
		setupMocks func(m commandMocks)
		wantErr    error
		wantOut    string
	}{
		{
			name: "receive_persists_after_success",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Receive(ctx, "admin", "553355", "bolt", "3", "0.25")
			},
			setupMocks: func(m commandMocks) {
				gomock.InOrder(
					m.service.EXPECT().Login(gomock.Any(), "admin", "553355").Return(sess, nil),
					m.service.EXPECT().Receive(gomock.Any(), sess, "bolt", 3, decimal.RequireFromString("0.25")).Return(nil),
					m.service.EXPECT().Logout(gomock.Any(), sess).Return(nil),
				)
			},
			wantOut: "3 x bolt added.\n",
		},
		{
			name: "receive_rejects_bad_quantity_before_login",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Receive(ctx, "admin", "553355", "bolt", "three", "0.25")
			},
			setupMocks: func(m commandMocks) {},
			wantErr:    domain.ErrValidation,
		},
		{
			name: "receive_rejects_non_positive_price",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Receive(ctx, "admin", "553355", "bolt", "3", "-1")
			},
			setupMocks: func(m commandMocks) {},
			wantErr:    domain.ErrValidation,
		},
		{
			name: "issue_failure_skips_persist",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Issue(ctx, "admin", "553355", "bolt", "300")
			},
			setupMocks: func(m commandMocks) {
				m.service.EXPECT().Login(gomock.Any(), "admin", "553355").Return(sess, nil)
				m.service.EXPECT().Issue(gomock.Any(), sess, "bolt", 300).
					Return(fmt.Errorf("%w: bolt has 3, requested 300", domain.ErrInsufficientStock))
			},
			wantErr: domain.ErrInsufficientStock,
		},
		{
			name: "issue_persists_after_success",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Issue(ctx, "admin", "553355", "bolt", "2")
			},
			setupMocks: func(m commandMocks) {
				m.service.EXPECT().Login(gomock.Any(), "admin", "553355").Return(sess, nil)
				m.service.EXPECT().Issue(gomock.Any(), sess, "bolt", 2).Return(nil)
				m.service.EXPECT().Logout(gomock.Any(), sess).Return(nil)
			},
			wantOut: "2 x bolt issued.\n",
		},
		{
			name: "display_renders_list",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Display(ctx, "admin", "553355")
			},
			setupMocks: func(m commandMocks) {
				m.service.EXPECT().Login(gomock.Any(), "admin", "553355").Return(sess, nil)
				m.service.EXPECT().List(gomock.Any(), sess).Return([]domain.Entry{}, nil)
			},
			wantOut: "The warehouse is empty.\n",
		},
		{
			name: "display_login_failure",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Display(ctx, "admin", "nope")
			},
			setupMocks: func(m commandMocks) {
				m.service.EXPECT().Login(gomock.Any(), "admin", "nope").Return(nil, unauthorized)
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name: "export_saves_to_opened_store",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Export(ctx, "admin", "553355", "stock.xlsx")
			},
			setupMocks: func(m commandMocks) {
				m.opener.EXPECT().Open(gomock.Any(), "stock.xlsx").Return(m.store, nil)
				m.service.EXPECT().Login(gomock.Any(), "admin", "553355").Return(sess, nil)
				m.service.EXPECT().SaveTo(gomock.Any(), sess, m.store).Return(nil)
			},
			wantOut: "Inventory saved to stock.xlsx\n",
		},
		{
			name: "import_loads_then_persists",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Import(ctx, "admin", "553355", "stock.json")
			},
			setupMocks: func(m commandMocks) {
				m.opener.EXPECT().Open(gomock.Any(), "stock.json").Return(m.store, nil)
				gomock.InOrder(
					m.service.EXPECT().Login(gomock.Any(), "admin", "553355").Return(sess, nil),
					m.service.EXPECT().LoadFrom(gomock.Any(), sess, m.store).Return(nil),
					m.service.EXPECT().Logout(gomock.Any(), sess).Return(nil),
				)
			},
			wantOut: "Inventory loaded from stock.json\n",
		},
		{
			name: "import_missing_file_skips_persist",
			run: func(ctx context.Context, h *handlers.CommandHandler) error {
				return h.Import(ctx, "admin", "553355", "missing.json")
			},
			setupMocks: func(m commandMocks) {
				m.opener.EXPECT().Open(gomock.Any(), "missing.json").Return(m.store, nil)
				m.service.EXPECT().Login(gomock.Any(), "admin", "553355").Return(sess, nil)
				m.service.EXPECT().LoadFrom(gomock.Any(), sess, m.store).
					Return(fmt.Errorf("%w: file missing.json", domain.ErrNotFound))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := commandMocks{
				service: mocks.NewMockInventoryService(ctrl),
				opener:  mocks.NewMockSnapshotOpener(ctrl),
				store:   mocks.NewMockInventoryStore(ctrl),
			}
			tt.setupMocks(m)

			var out bytes.Buffer
			h := handlers.NewCommandHandler(m.service, m.opener, &out, helpers.TestLogger())

			err := tt.run(context.Background(), h)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}
