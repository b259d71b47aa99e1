package main

import (
	"fmt"
	"strconv"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var orderCmd = &cli.Command{
	Name:  "order",
	Usage: "Manage rental orders",
	Subcommands: []*cli.Command{
		orderList,
	},
}

var orderList = &cli.Command{
	Name:  "list",
	Usage: "List rental orders",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "--verbose",
			Aliases: []string{"v"},
		},
		&cli.StringFlag{
			Name:  "renter",
			Usage: "filter by renter id",
		},
	},
	Action: func(cctx *cli.Context) error {

		fullFlag := cctx.Bool("verbose")
		renterFilter := cctx.String("renter")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		orders, err := store.ListOrders()
		if err != nil {
			return fmt.Errorf("failed list orders, error: %+v", err)
		}

		var orderData [][]string
		var rowColorList []RowColor
		for _, order := range orders {
			if renterFilter != "" && order.RenterId != renterFilter {
				continue
			}

			var end string
			if order.EndTime != nil {
				end = order.EndTime.Format("2006-01-02 15:04:05")
			}
			cost := strconv.FormatFloat(order.TotalCost, 'f', 2, 64)

			if fullFlag {
				orderData = append(orderData,
					[]string{order.Id, order.RenterId, order.DeviceId, string(order.Status),
						order.StartTime.Format("2006-01-02 15:04:05"), end,
						strconv.Itoa(order.DurationHours) + " h", cost,
						strconv.Itoa(len(order.TemplateIds))})
			} else {
				var renterId string
				if len(order.RenterId) > 8 {
					renterId = order.RenterId[:8] + "..."
				} else {
					renterId = order.RenterId
				}

				var orderId string
				if len(order.Id) > 12 {
					orderId = "..." + order.Id[len(order.Id)-12:]
				} else {
					orderId = order.Id
				}

				var deviceId string
				if len(order.DeviceId) > 12 {
					deviceId = "..." + order.DeviceId[len(order.DeviceId)-12:]
				} else {
					deviceId = order.DeviceId
				}

				orderData = append(orderData,
					[]string{orderId, renterId, deviceId, string(order.Status),
						strconv.Itoa(order.DurationHours) + " h", cost})
			}

			var rowColor []tablewriter.Colors
			switch order.Status {
			case models.OrderStatusActive:
				rowColor = []tablewriter.Colors{{tablewriter.Bold, tablewriter.FgGreenColor}}
			case models.OrderStatusCompleted:
				rowColor = []tablewriter.Colors{{tablewriter.Bold, tablewriter.FgCyanColor}}
			default:
				rowColor = []tablewriter.Colors{{tablewriter.Bold, tablewriter.FgRedColor}}
			}
			rowColorList = append(rowColorList, RowColor{
				row:    len(orderData) - 1,
				column: []int{3},
				color:  rowColor,
			})
		}

		var header []string
		if fullFlag {
			header = []string{"ORDER ID", "RENTER", "DEVICE", "STATUS", "START", "END", "DURATION", "COST", "APPS"}
		} else {
			header = []string{"ORDER ID", "RENTER", "DEVICE", "STATUS", "DURATION", "COST"}
		}
		NewVisualTable(header, orderData, rowColorList).Generate()

		return nil
	},
}
