package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

const collectionTimesheets = "timesheets"

var _ ports.TimesheetRepository = (*TimesheetRepository)(nil)

// TimesheetRepository implements ports.TimesheetRepository using MongoDB.
// Hours and money are stored as Decimal128.
type TimesheetRepository struct {
	col *mongo.Collection
}

func NewTimesheetRepository(db *mongo.Database) *TimesheetRepository {
	return &TimesheetRepository{col: db.Collection(collectionTimesheets)}
}

type mongoTimesheet struct {
	ID             string               `bson:"_id"`
	ContractorID   string               `bson:"contractor_id"`
	ContractorName string               `bson:"contractor_name"`
	Client         string               `bson:"client"`
	SiteAddress    string               `bson:"site_address"`
	WeekStart      time.Time            `bson:"week_start"`
	WeekEnd        time.Time            `bson:"week_end"`
	BasicHours     primitive.Decimal128 `bson:"basic_hours"`
	SaturdayHours  primitive.Decimal128 `bson:"saturday_hours"`
	SundayHours    primitive.Decimal128 `bson:"sunday_hours"`
	HourlyRate     primitive.Decimal128 `bson:"hourly_rate"`
	TotalHours     primitive.Decimal128 `bson:"total_hours"`
	TotalPay       primitive.Decimal128 `bson:"total_pay"`
	Approved       bool                 `bson:"approved"`
	SubmittedOn    time.Time            `bson:"submitted_on"`
	ApprovedOn     *time.Time           `bson:"approved_on,omitempty"`
	IdempotencyKey string               `bson:"idempotency_key,omitempty"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode decimal %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode decimal %s: %w", v, err)
	}
	return d, nil
}

func toMongoTimesheet(t *domain.Timesheet) (*mongoTimesheet, error) {
	doc := &mongoTimesheet{
		ID:             t.ID,
		ContractorID:   t.ContractorID,
		ContractorName: t.ContractorName,
		Client:         t.Client,
		SiteAddress:    t.SiteAddress,
		WeekStart:      t.WeekStart.UTC(),
		WeekEnd:        t.WeekEnd.UTC(),
		Approved:       t.Approved,
		SubmittedOn:    t.SubmittedOn.UTC(),
		ApprovedOn:     t.ApprovedOn,
		IdempotencyKey: t.IdempotencyKey,
	}

	fields := []struct {
		dst *primitive.Decimal128
		src decimal.Decimal
	}{
		{&doc.BasicHours, t.BasicHours},
		{&doc.SaturdayHours, t.SaturdayHours},
		{&doc.SundayHours, t.SundayHours},
		{&doc.HourlyRate, t.HourlyRate},
		{&doc.TotalHours, t.TotalHours},
		{&doc.TotalPay, t.TotalPay},
	}
	for _, f := range fields {
		v, err := toDecimal128(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return doc, nil
}

func (m *mongoTimesheet) toDomain() (*domain.Timesheet, error) {
	t := &domain.Timesheet{
		ID:             m.ID,
		ContractorID:   m.ContractorID,
		ContractorName: m.ContractorName,
		Client:         m.Client,
		SiteAddress:    m.SiteAddress,
		WeekStart:      m.WeekStart.UTC(),
		WeekEnd:        m.WeekEnd.UTC(),
		Approved:       m.Approved,
		SubmittedOn:    m.SubmittedOn.UTC(),
		IdempotencyKey: m.IdempotencyKey,
	}
	if m.ApprovedOn != nil {
		at := m.ApprovedOn.UTC()
		t.ApprovedOn = &at
	}

	fields := []struct {
		dst *decimal.Decimal
		src primitive.Decimal128
	}{
		{&t.BasicHours, m.BasicHours},
		{&t.SaturdayHours, m.SaturdayHours},
		{&t.SundayHours, m.SundayHours},
		{&t.HourlyRate, m.HourlyRate},
		{&t.TotalHours, m.TotalHours},
		{&t.TotalPay, m.TotalPay},
	}
	for _, f := range fields {
		v, err := fromDecimal128(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return t, nil
}

// Create inserts a new timesheet document.
func (r *TimesheetRepository) Create(ctx context.Context, t *domain.Timesheet) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoTimesheet(t)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return insertError(err)
	}
	return nil
}

// insertError maps a duplicate key on the (contractor_id, idempotency_key)
// index to domain.ErrDuplicateSubmission. Ids are random UUIDs, so that index
// is the only one a legitimate insert can collide on.
func insertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateSubmission
	}
	return fmt.Errorf("insert timesheet: %w", err)
}

func (r *TimesheetRepository) FindByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIdempotencyKey retrieves an earlier submission made with the given key.
func (r *TimesheetRepository) FindByIdempotencyKey(ctx context.Context, contractorID, key string) (*domain.Timesheet, error) {
	return r.findOne(ctx, bson.M{"contractor_id": contractorID, "idempotency_key": key})
}

func (r *TimesheetRepository) findOne(ctx context.Context, filter bson.M) (*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTimesheet
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTimesheetNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// List returns timesheets matching filter, newest submission first.
func (r *TimesheetRepository) List(ctx context.Context, f ports.TimesheetFilter) ([]*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Approved != nil {
		filter["approved"] = *f.Approved
	}
	if f.ContractorID != "" {
		filter["contractor_id"] = f.ContractorID
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "submitted_on", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}

	var docs []mongoTimesheet
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode timesheets: %w", err)
	}

	out := make([]*domain.Timesheet, 0, len(docs))
	for i := range docs {
		t, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// MarkApproved sets approved/approved_on in a single conditional update that
// only matches pending documents, so concurrent approvals stamp the time once.
func (r *TimesheetRepository) MarkApproved(ctx context.Context, id string, at time.Time) (*domain.Timesheet, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "approved": false}
	update := bson.M{"$set": bson.M{"approved": true, "approved_on": at.UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTimesheet
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		t, err := doc.toDomain()
		return t, true, err
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("approve timesheet: %w", err)
	}

	// Either the id is unknown or the timesheet was already approved.
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// EnsureIndexes creates the indexes used by listings and idempotent submission.
func (r *TimesheetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "approved", Value: 1}, {Key: "submitted_on", Value: -1}}},
		{Keys: bson.D{{Key: "contractor_id", Value: 1}, {Key: "submitted_on", Value: -1}}},
		{
			Keys: bson.D{{Key: "contractor_id", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
