package main

import (
	"context"

	"github.com/FleetGate/FleetGate/internal/common/logger"
	"github.com/FleetGate/FleetGate/internal/employee"
)

// seedEmployees 员工表为空时写入示例员工（开发/演示环境用）。
func seedEmployees(ctx context.Context, repo *employee.Repo, log logger.Logger) error {
	count, err := repo.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("employees table not empty, skip seeding")
		return nil
	}

	samples := []employee.Employee{
		{EmployeeID: "EMP001", Name: "John Smith", Department: "IT", Grade: "Senior"},
		{EmployeeID: "EMP002", Name: "Sarah Johnson", Department: "HR", Grade: "Manager"},
		{EmployeeID: "EMP003", Name: "Michael Brown", Department: "Finance", Grade: "Junior"},
		{EmployeeID: "EMP004", Name: "Emily Davis", Department: "Operations", Grade: "Senior"},
		{EmployeeID: "EMP005", Name: "David Wilson", Department: "Marketing", Grade: "Director"},
	}
	for i := range samples {
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}
	log.Infof("seeded %d sample employees", len(samples))
	return nil
}
